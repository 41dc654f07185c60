package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/utils"
)

// Continues a run of bits if next can follow the previous bit of the run
func continuesRun(previous, next bits.Bit) bool {
	switch {
	case previous.IsConstant() && next.IsConstant():
		return true
	case previous.IsLinked() && next.IsLinked():
		return previous.Argument == next.Argument && next.Index == previous.Index+1
	default:
		return false
	}
}

func runName(run []bits.Bit) string {
	first := run[0]

	if first.IsConstant() {
		value := utils.Reduce(utils.Indices(len(run)), func(i int, acc uint64) uint64 {
			return acc | uint64(run[i].Value)<<i
		})

		return fmt.Sprintf("%v'b%v", len(run), utils.FormatUintBinary(value, len(run)))
	}

	last := run[len(run)-1]
	if len(run) == 1 {
		return fmt.Sprintf("%v[%v]", first.Argument, first.Index)
	}

	return fmt.Sprintf("%v[%v:%v]", first.Argument, last.Index, first.Index)
}

// Splits the bits of an argument in frame fields made of runs of constant bits
// or of consecutive bits of the same linked argument. Unset bits are left out.
func argumentFrameFields(argument *Argument) []utils.BitFrameField {
	var fields []utils.BitFrameField

	for begin := 0; begin < argument.Width(); {
		if !argument.Bits[begin].IsSet() {
			begin++
			continue
		}

		end := begin + 1
		for end < argument.Width() && continuesRun(argument.Bits[end-1], argument.Bits[end]) {
			end++
		}

		fields = append(fields, utils.BitFrameField{
			Name:  runName(argument.Bits[begin:end]),
			Begin: begin,
			Width: end - begin,
		})

		begin = end
	}

	return fields
}

// Returns human readable documentation of the pair: one bit layout diagram per
// hardware field, and the hardware bits every software argument is made of.
func (p *Pair) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	pad := strings.Repeat(" ", leftpad)

	builder.WriteString(fmt.Sprintf("%v%v (%v) <-> %v\n\n", pad, p.Hardware.Name, p.Hardware.Class, p.Software.Name))
	builder.WriteString(pad + "  Hardware fields:\n\n")

	for _, argument := range p.Hardware.Arguments() {
		frame, err := utils.BitFrame(argumentFrameFields(argument), argument.Width(), leftpad+4)
		if err != nil {
			return "", utils.MakeError(err, "documenting %v.%v", p.Hardware.Name, argument.Name)
		}

		builder.WriteString(fmt.Sprintf("%v    %v:\n", pad, argument.Name))
		builder.WriteString(frame)
		builder.WriteString("\n")
	}

	builder.WriteString(pad + "  Software arguments:\n\n")

	if len(p.Software.Arguments()) == 0 {
		builder.WriteString(pad + "    (none)\n")
	}

	for _, argument := range p.Software.Arguments() {
		builder.WriteString(fmt.Sprintf("%v    %v = %v\n", pad, argument.Name, argument.Concatenation()))
	}

	return builder.String(), nil
}
