package database

import (
	"errors"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

var (
	ErrArgumentOutOfRange = errors.New("argument out of range")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnknownArgument    = errors.New("unknown argument")
)

// Hardware encoding of a software instruction
type Encoded struct {
	Pair  *instructions.Pair
	Class instructions.Class
	// Value of every hardware field defined by the instruction
	Fields map[string]uint32
}

// Packs a hardware field from its bits, most significant first. Constant bits
// give their value, linked bits the bit of the software argument they link
// to, and unset bits zero. This is what the generated Bits(...) expressions compute.
func PackField(fieldBits []bits.Bit, arguments map[string]uint32) uint32 {
	var value uint32

	for _, bit := range fieldBits {
		value <<= 1

		switch bit.Kind {
		case bits.BitKind_Constant:
			value |= uint32(bit.Value)
		case bits.BitKind_Linked:
			argument := arguments[bit.Argument]
			value |= utils.CreateBitView(&argument).Bit(bit.Index)
		}
	}

	return value
}

// Encodes a software instruction with the given argument values into its
// hardware class and field values. Every software argument must be given and
// fit in the argument width.
func (d *Database) Encode(softwareName string, arguments map[string]uint32) (*Encoded, error) {
	pair, err := d.PairBySoftwareName(softwareName)
	if err != nil {
		return nil, err
	}

	for name := range arguments {
		if _, ok := pair.Software.Argument(name); !ok {
			return nil, utils.MakeError(ErrUnknownArgument, "%v has no argument '%v'", softwareName, name)
		}
	}

	for _, argument := range pair.Software.Arguments() {
		value, ok := arguments[argument.Name]
		if !ok {
			return nil, utils.MakeError(ErrMissingArgument, "%v requires argument '%v'", softwareName, argument.Name)
		}

		if argument.Width() < 32 && value >= uint32(1)<<argument.Width() {
			return nil, utils.MakeError(ErrArgumentOutOfRange, "%v.%v = %v does not fit in %v bits", softwareName, argument.Name, value, argument.Width())
		}
	}

	fields := make(map[string]uint32, len(pair.Hardware.Arguments()))

	for _, name := range pair.Hardware.ArgumentNames() {
		fieldBits, _ := pair.Hardware.FieldBits(name)
		fields[name] = PackField(fieldBits, arguments)
	}

	return &Encoded{
		Pair:   pair,
		Class:  pair.Hardware.Class,
		Fields: fields,
	}, nil
}
