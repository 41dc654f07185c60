package instructions

import (
	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/utils"
)

// Adds bits to the named argument of instr and, for every linked bit, writes
// the reciprocal link into the paired instruction other. After the call the
// link graph between both instructions is symmetric for the added bits, so no
// later resolution pass is needed. Neither instruction is modified if any bit
// or reciprocal link conflicts.
func AddArgument(instr *Instruction, name string, newBits []bits.Bit, other *Instruction) error {
	if err := checkArgument(instr, name, newBits, other); err != nil {
		return err
	}

	if err := instr.SetArgument(name, newBits); err != nil {
		return err
	}

	for i, bit := range newBits {
		if !bit.IsLinked() {
			continue
		}

		linked := other.ArgumentOrAdd(bit.Argument)
		if err := linked.SetBit(bit.Index, bits.Linked(name, i)); err != nil {
			return utils.MakeError(err, "instruction '%v'", other.Name)
		}
	}

	return nil
}

type bitRef struct {
	argument string
	index    int
}

// Checks every write AddArgument would do, including reciprocals that collide
// with each other, without touching either instruction
func checkArgument(instr *Instruction, name string, newBits []bits.Bit, other *Instruction) error {
	if current, ok := instr.Argument(name); ok {
		for i, bit := range newBits {
			if err := current.checkBit(i, bit); err != nil {
				return utils.MakeError(err, "instruction '%v'", instr.Name)
			}
		}
	}

	reciprocals := make(map[bitRef]bits.Bit)

	for i, bit := range newBits {
		if !bit.IsLinked() {
			continue
		}

		back := bits.Linked(name, i)
		ref := bitRef{bit.Argument, bit.Index}

		if previous, ok := reciprocals[ref]; ok && previous != back {
			return utils.MakeError(ErrConsistency, "instruction '%v': bit %v of argument '%v' is linked from both %v and %v", other.Name, bit.Index, bit.Argument, previous, back)
		}
		reciprocals[ref] = back

		if linked, ok := other.Argument(bit.Argument); ok {
			if err := linked.checkBit(bit.Index, back); err != nil {
				return utils.MakeError(err, "instruction '%v'", other.Name)
			}
		}
	}

	return nil
}

// Checks that every linked bit of instr points to a bit of other that links back to it
func CheckLinks(instr *Instruction, other *Instruction) error {
	for _, argument := range instr.Arguments() {
		for i, bit := range argument.Bits {
			if !bit.IsLinked() {
				continue
			}

			linked, ok := other.Argument(bit.Argument)
			if !ok {
				return utils.MakeError(ErrConsistency, "%v.%v[%v] links to missing argument %v.%v", instr.Name, argument.Name, i, other.Name, bit.Argument)
			}

			if back := linked.Bit(bit.Index); back != bits.Linked(argument.Name, i) {
				return utils.MakeError(ErrConsistency, "%v.%v[%v] links to %v.%v, which links back to %v", instr.Name, argument.Name, i, other.Name, bit, back)
			}
		}
	}

	return nil
}
