package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

const (
	// Template argument giving the number of cycles to stall after issuing the instruction
	PostCycleArgument = "post_cc"
	// Macro disabling the pipeline interlock emulation: when set every
	// instruction stalls until its write back
	PipelineDisableMacro = "COPRO_PIPELINE_DISABLE"
	// Description of instructions missing from the descriptions table
	NoDescription = "NO DESCRIPTION AVAILABLE"

	notSpecified = "0 /* Not specified */"
	evenMessage  = "Register number must be even for 16/32 bit values, and for swizzle inputs"
)

// Returns the description comment lines of an instruction
func (g *Generator) description(pair *instructions.Pair) []string {
	cells, ok := g.db.Description(pair.Hardware.Name)
	if !ok || len(cells) == 0 {
		cells = []string{NoDescription}
	}

	var lines []string

	for _, cell := range cells {
		for _, line := range strings.Split(cell, "\n") {
			line = strings.TrimRightFunc("// "+line, unicode.IsSpace)
			lines = append(lines, strings.ReplaceAll(line, pair.Hardware.Name, pair.Software.Name))
		}
	}

	return lines
}

func bitExpression(bit bits.Bit) string {
	switch bit.Kind {
	case bits.BitKind_Constant:
		return fmt.Sprint(bit.Value)
	case bits.BitKind_Linked:
		return fmt.Sprintf("GetBit(%v, %v)", bit.Argument, bit.Index)
	default:
		return notSpecified
	}
}

// Returns the C++ expression computing a hardware field from the template
// arguments, most significant bit first. See [database.PackField].
func FieldExpression(hw *instructions.HwInstruction, field string) string {
	fieldBits, ok := hw.FieldBits(field)
	if !ok {
		return notSpecified
	}

	return "Bits(" + strings.Join(utils.Map(fieldBits, bitExpression), ", ") + ")"
}

// Renders the inline function issuing a software instruction
func (g *Generator) Function(pair *instructions.Pair) (string, error) {
	hw, sw := pair.Hardware, pair.Software

	fields, err := hw.Class.Fields()
	if err != nil {
		return "", utils.MakeError(err, "instruction %v", hw.Name)
	}

	var templateArguments, runtimeArguments []*instructions.Argument
	for _, argument := range sw.Arguments() {
		if isRuntimeArgument(argument.Name) {
			runtimeArguments = append(runtimeArguments, argument)
		} else {
			templateArguments = append(templateArguments, argument)
		}
	}

	declaration := func(name string) string { return "unsigned int " + name }
	argumentName := func(argument *instructions.Argument) string { return argument.Name }

	var code strings.Builder

	for _, line := range g.description(pair) {
		code.WriteString(line + "\n")
	}

	templateParameters := append(utils.Map(templateArguments, argumentName), PostCycleArgument+" = 0")
	fmt.Fprintf(&code, "template <%v>\n", strings.Join(utils.Map(templateParameters, declaration), ", "))
	fmt.Fprintf(&code, "__inline_always void %v(%v)\n", sw.Name, strings.Join(utils.Map(utils.Map(runtimeArguments, argumentName), declaration), ", "))
	code.WriteString("{\n")

	even := evenArguments(hw.Name, sw.Name)

	for _, argument := range templateArguments {
		fmt.Fprintf(&code, "    static_assert(%v < %v, \"Argument out of range\");\n", argument.Name, upperBound(argument.Name, argument.Width()))

		if utils.Contains(even, argument.Name) {
			fmt.Fprintf(&code, "    static_assert((%v %% 2) == 0, \"%v\");\n", argument.Name, evenMessage)
		}
	}

	for _, field := range fields {
		fmt.Fprintf(&code, "    constexpr unsigned %v = %v;\n", field, FieldExpression(hw, field))
	}

	fmt.Fprintf(&code, "    %v<%v>(%v);\n", hw.Class.Intrinsic(), strings.Join(fields, ", "), strings.Join(utils.Map(runtimeArguments, argumentName), ", "))
	fmt.Fprintf(&code, "    constexpr unsigned wbCycle = VE_TIMING::%v::%v;\n", TimingName(pair), writeBackStage)
	fmt.Fprintf(&code, "    nop<(%v || (%v > wbCycle)) ? wbCycle : %v>();\n", PipelineDisableMacro, PostCycleArgument, PostCycleArgument)
	code.WriteString("}\n")

	return code.String(), nil
}
