// Package bits models the individual bits of coprocessor instruction
// arguments and parses the verilog-like bitfield expressions used by the
// instruction encodings table.
package bits

import "fmt"

// Kind of information a bit carries
type BitKind uint8

const (
	// The bit has not been defined yet
	BitKind_Unset BitKind = iota
	// The bit has a fixed value
	BitKind_Constant
	// The bit mirrors a bit of an argument of the paired instruction
	BitKind_Linked
)

// A single bit of an instruction argument. The zero value is an unset bit.
// Bits are plain values and compare with ==.
type Bit struct {
	Kind BitKind
	// Value of a constant bit, 0 or 1
	Value uint8
	// Argument of the paired instruction a linked bit refers to
	Argument string
	// Bit index within Argument a linked bit refers to
	Index int
}

// An undefined bit
var Unset = Bit{}

// Returns a bit with a fixed value. Any non zero value is taken as 1
func Constant(value uint8) Bit {
	if value != 0 {
		value = 1
	}

	return Bit{Kind: BitKind_Constant, Value: value}
}

// Returns a bit linked to bit index of the given argument of the paired instruction
func Linked(argument string, index int) Bit {
	return Bit{Kind: BitKind_Linked, Argument: argument, Index: index}
}

func (b Bit) IsSet() bool {
	return b.Kind != BitKind_Unset
}

func (b Bit) IsConstant() bool {
	return b.Kind == BitKind_Constant
}

func (b Bit) IsLinked() bool {
	return b.Kind == BitKind_Linked
}

// Returns "0"/"1" for constant bits, "arg[i]" for linked bits and "-" for unset bits
func (b Bit) String() string {
	switch b.Kind {
	case BitKind_Constant:
		return fmt.Sprint(b.Value)
	case BitKind_Linked:
		return fmt.Sprintf("%v[%v]", b.Argument, b.Index)
	default:
		return "-"
	}
}
