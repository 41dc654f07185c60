package codegen

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

var ErrUnknownStage = errors.New("unknown pipeline stage")

// Pipeline stages whose cycle counts are visible to software, keyed by the
// (upper case) timings table column. Stages not listed here are matched by
// prefix in [stageConstant].
var stageConstants = map[string]string{
	"RF READ":    "OP_READ",
	"FLAG READ":  "FLAG_READ",
	"FLAG WRITE": "FLAG_WRITE",
	"EXECUTE":    "EXECUTE",
}

const (
	writeBackStage = "WRITE_BACK"
	pipelineStage  = "PIPELINE"
)

// Returns the name of the constant holding the cycle count of a timings table
// stage. Returns an empty name for stages software doesn't care about.
func stageConstant(stage string) (string, error) {
	stage = strings.ToUpper(stage)

	if constant, ok := stageConstants[stage]; ok {
		return constant, nil
	}

	switch {
	case strings.HasPrefix(stage, "RF, ACCU"):
		return writeBackStage, nil
	case strings.HasPrefix(stage, "PIPELINE"):
		// pipeline depth, not a stage
		return pipelineStage, nil
	case stage == "COMPLETE":
		// the MCU always spends one cycle issuing the instruction
		return "", nil
	default:
		return "", utils.MakeError(ErrUnknownStage, "'%v'", stage)
	}
}

// Name of the timings struct of an instruction, e.g. "ve_add_8" -> "ADD_8"
func TimingName(pair *instructions.Pair) string {
	return strings.TrimPrefix(strings.ToUpper(pair.Software.Name), strings.ToUpper(instructions.SoftwareNamePrefix))
}

// Renders the VE_TIMING struct of an instruction, one constant per pipeline stage
func (g *Generator) Timing(pair *instructions.Pair) (string, error) {
	var code strings.Builder

	fmt.Fprintf(&code, "struct %v\n{\n", TimingName(pair))

	for _, cell := range g.db.Timings().Cells(pair.Hardware.Name) {
		if cell.Value == "" || cell.Value == "N/A" {
			continue
		}

		constant, err := stageConstant(cell.Stage)
		if err != nil {
			return "", utils.MakeError(err, "timings of %v", pair.Hardware.Name)
		}

		if constant == "" {
			continue
		}

		if _, err := strconv.ParseUint(cell.Value, 10, 32); err != nil {
			g.logger.Warn("ignoring non numeric timing",
				slog.String("instruction", pair.Hardware.Name),
				slog.String("stage", cell.Stage),
				slog.String("value", cell.Value))
			continue
		}

		fmt.Fprintf(&code, "    constexpr static unsigned int %-*v = %v;\n", len(writeBackStage), constant, cell.Value)
	}

	code.WriteString("};\n")
	return code.String(), nil
}
