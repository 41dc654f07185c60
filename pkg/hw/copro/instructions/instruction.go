// Package instructions models hardware and software coprocessor instructions
// and the bit links between their arguments.
package instructions

import (
	"fmt"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/utils"
)

// A hardware or software instruction: a name plus arguments in a well
// defined order
type Instruction struct {
	Name      string
	arguments *utils.OrderedMap[*Argument]
}

func NewInstruction(name string) *Instruction {
	return &Instruction{
		Name:      name,
		arguments: utils.NewOrderedMap[*Argument](),
	}
}

// Returns the argument with the given name, if any
func (i *Instruction) Argument(name string) (*Argument, bool) {
	return i.arguments.Get(name)
}

// Returns the argument with the given name, adding an empty one at the end if it does not exist
func (i *Instruction) ArgumentOrAdd(name string) *Argument {
	if argument, ok := i.arguments.Get(name); ok {
		return argument
	}

	argument := NewArgument(name)
	i.arguments.Set(name, argument)
	return argument
}

// Returns all arguments in order
func (i *Instruction) Arguments() []*Argument {
	return i.arguments.Values()
}

// Returns all argument names in order
func (i *Instruction) ArgumentNames() []string {
	return i.arguments.Keys()
}

// Merges bits into an argument, creating it if needed. The reciprocal links
// on the paired instruction are not touched, see [AddArgument] for that.
func (i *Instruction) SetArgument(name string, newBits []bits.Bit) error {
	if err := i.ArgumentOrAdd(name).Merge(newBits); err != nil {
		return utils.MakeError(err, "instruction '%v'", i.Name)
	}

	return nil
}

// Moves the given arguments to the front, in the given order. Arguments not
// listed keep their original relative order after them.
func (i *Instruction) SortArguments(order []string) {
	i.arguments.MoveToFront(order)
}

// Returns a deep copy of the instruction
func (i *Instruction) Clone() *Instruction {
	clone := NewInstruction(i.Name)

	for _, argument := range i.Arguments() {
		clone.arguments.Set(argument.Name, &Argument{
			Name: argument.Name,
			Bits: append([]bits.Bit(nil), argument.Bits...),
		})
	}

	return clone
}

func (i *Instruction) String() string {
	return fmt.Sprintf("%v %v", i.Name, utils.FormatSlice(i.Arguments(), ", "))
}

// An instruction in its raw hardware form: coprocessor fields plus the class
// used to issue it
type HwInstruction struct {
	*Instruction
	Class Class
}

func NewHwInstruction(name string, class Class) *HwInstruction {
	return &HwInstruction{
		Instruction: NewInstruction(name),
		Class:       class,
	}
}

// Returns the bits of a hardware field most significant first, as they are
// packed into the field value. Returns false if the instruction does not
// define the field at all.
func (h *HwInstruction) FieldBits(field string) ([]bits.Bit, bool) {
	argument, ok := h.Argument(field)
	if !ok {
		return nil, false
	}

	return utils.Reversed(argument.Bits), true
}

func (h *HwInstruction) Clone() *HwInstruction {
	return &HwInstruction{
		Instruction: h.Instruction.Clone(),
		Class:       h.Class,
	}
}

func (h *HwInstruction) String() string {
	return fmt.Sprintf("%v (%v)", h.Instruction, h.Class)
}
