package instructions

import (
	"errors"
	"strings"

	"github.com/Manu343726/copro/pkg/utils"
)

// Arm coprocessor instruction class used to issue an instruction
type Class string

const (
	Class_CDP   Class = "CDP"
	Class_CDP2  Class = "CDP2"
	Class_MCR   Class = "MCR"
	Class_MCR2  Class = "MCR2"
	Class_MCRR  Class = "MCRR"
	Class_MCRR2 Class = "MCRR2"
)

var ErrUnsupportedClass = errors.New("unsupported coprocessor instruction class")

// Hardware fields encoded by each class, in the order the class intrinsic takes them
var classFields = map[Class][]string{
	Class_MCR:   {"CPNUM", "op1", "op2", "CRn", "CRm"},
	Class_MCR2:  {"CPNUM", "op1", "op2", "CRn", "CRm"},
	Class_MCRR:  {"CPNUM", "op1", "CRm"},
	Class_MCRR2: {"CPNUM", "op1", "CRm"},
	Class_CDP:   {"CPNUM", "op1", "op2", "CRd", "CRn", "CRm"},
	Class_CDP2:  {"CPNUM", "op1", "op2", "CRd", "CRn", "CRm"},
}

// Arm core registers transferred by each class. The encodings table has no
// columns for them, they map 1:1 to software arguments of the same name.
var classRegisters = map[Class][]string{
	Class_MCR:   {"Rt"},
	Class_MCR2:  {"Rt"},
	Class_MCRR:  {"Rt", "Rt2"},
	Class_MCRR2: {"Rt", "Rt2"},
}

// Width of the Arm core register number fields
const RegisterFieldBits = 5

// Returns true if the class is one of the known coprocessor classes
func (c Class) Valid() bool {
	_, ok := classFields[c]
	return ok
}

// Returns the hardware fields the class encodes, in intrinsic argument order
func (c Class) Fields() ([]string, error) {
	fields, ok := classFields[c]
	if !ok {
		return nil, utils.MakeError(ErrUnsupportedClass, "'%v'", string(c))
	}

	return fields, nil
}

// Returns the core register operands of the class (none for CDP)
func (c Class) Registers() []string {
	return classRegisters[c]
}

// Name of the compiler intrinsic issuing instructions of this class
func (c Class) Intrinsic() string {
	return strings.ToLower(string(c))
}
