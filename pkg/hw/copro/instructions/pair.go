package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
)

// Canonical argument order of hardware instructions
var HardwareArgumentOrder = []string{"CPNUM", "op1", "op2", "CRd", "CRn", "CRm"}

// Canonical argument order of software instructions
var SoftwareArgumentOrder = []string{"Dest", "Src0", "Src1", "Rt"}

// Prefix of all software instruction names
const SoftwareNamePrefix = "ve_"

// Returns the software name of a hardware instruction, e.g. "ADD.8" -> "ve_add_8"
func SoftwareName(hardwareName string) string {
	return SoftwareNamePrefix + strings.ToLower(strings.ReplaceAll(hardwareName, ".", "_"))
}

// A hardware instruction and its software view, built from one row of the encodings table
type Pair struct {
	Hardware *HwInstruction
	Software *Instruction
}

// Returns an empty pair for the given hardware instruction
func NewPair(hardwareName string, class Class) *Pair {
	return &Pair{
		Hardware: NewHwInstruction(hardwareName, class),
		Software: NewInstruction(SoftwareName(hardwareName)),
	}
}

// Adds a hardware argument and the software links it implies
func (p *Pair) AddHardwareArgument(name string, bitfield []bits.Bit) error {
	return AddArgument(p.Hardware.Instruction, name, bitfield, p.Software)
}

// Adds a software argument and the hardware links it implies
func (p *Pair) AddSoftwareArgument(name string, bitfield []bits.Bit) error {
	return AddArgument(p.Software, name, bitfield, p.Hardware.Instruction)
}

// Applies the canonical argument order to both instructions
func (p *Pair) Canonicalize() {
	p.Hardware.SortArguments(HardwareArgumentOrder)
	p.Software.SortArguments(SoftwareArgumentOrder)
}

// Checks the links between both instructions are symmetric
func (p *Pair) CheckLinks() error {
	if err := CheckLinks(p.Hardware.Instruction, p.Software); err != nil {
		return err
	}

	return CheckLinks(p.Software, p.Hardware.Instruction)
}

// Returns a deep copy of the pair
func (p *Pair) Clone() *Pair {
	return &Pair{
		Hardware: p.Hardware.Clone(),
		Software: p.Software.Clone(),
	}
}

func (p *Pair) String() string {
	return fmt.Sprintf("%v <-> %v", p.Hardware, p.Software)
}
