package instructions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/utils"
)

// Returned (wrapped) when a bit or argument is redefined with a different value
var ErrConsistency = errors.New("conflicting bit definition")

// A named argument of an instruction. Bits are stored least significant
// first; bits not defined yet are [bits.Unset].
type Argument struct {
	Name string
	Bits []bits.Bit
}

// Returns an argument with no bits defined
func NewArgument(name string) *Argument {
	return &Argument{Name: name}
}

// Number of bits of the argument, defined or not
func (a *Argument) Width() int {
	return len(a.Bits)
}

// Returns bit i, or [bits.Unset] if the argument is narrower than i
func (a *Argument) Bit(i int) bits.Bit {
	if i < 0 || i >= len(a.Bits) {
		return bits.Unset
	}

	return a.Bits[i]
}

func (a *Argument) checkBit(i int, bit bits.Bit) error {
	if current := a.Bit(i); current.IsSet() && bit.IsSet() && current != bit {
		return utils.MakeError(ErrConsistency, "bit %v of argument '%v' is already defined as %v, cannot redefine it as %v", i, a.Name, current, bit)
	}

	return nil
}

// Defines bit i, growing the argument with unset bits if needed. Setting a bit
// to the value it already has is a no-op; setting it to a different value fails.
func (a *Argument) SetBit(i int, bit bits.Bit) error {
	if i < 0 {
		return utils.MakeError(ErrConsistency, "negative bit index %v for argument '%v'", i, a.Name)
	}

	if err := a.checkBit(i, bit); err != nil {
		return err
	}

	if !bit.IsSet() {
		return nil
	}

	for len(a.Bits) <= i {
		a.Bits = append(a.Bits, bits.Unset)
	}

	a.Bits[i] = bit
	return nil
}

// Merges a sequence of bits (least significant first) into the argument. Unset
// input bits keep whatever the argument already had. Nothing is modified if
// any bit conflicts.
func (a *Argument) Merge(newBits []bits.Bit) error {
	for i, bit := range newBits {
		if err := a.checkBit(i, bit); err != nil {
			return err
		}
	}

	for i, bit := range newBits {
		if err := a.SetBit(i, bit); err != nil {
			return err
		}
	}

	return nil
}

// Returns true if both arguments have the same name and bits
func (a *Argument) Equal(other *Argument) bool {
	if a.Name != other.Name || len(a.Bits) != len(other.Bits) {
		return false
	}

	for i := range a.Bits {
		if a.Bits[i] != other.Bits[i] {
			return false
		}
	}

	return true
}

// Returns the argument as "name=[b0,b1,...]", least significant bit first
func (a *Argument) String() string {
	return fmt.Sprintf("%v=[%v]", a.Name, utils.FormatSlice(a.Bits, ","))
}

// Returns the bits most significant first, in verilog concatenation style: "{CPNUM[2], CRd[3], ...}"
func (a *Argument) Concatenation() string {
	return "{" + strings.Join(utils.Map(utils.Reversed(a.Bits), bits.Bit.String), ", ") + "}"
}
