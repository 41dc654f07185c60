package codegen

import (
	"regexp"
	"strings"

	"github.com/Manu343726/copro/pkg/utils"
)

// Number of registers of the vector engine. Register operands are bounded by
// it instead of by their width.
const RegisterFileSize = 24

var registerArguments = []string{"Dest", "Src0", "Src1"}

// Rotate and shift by register operations. Their shift amount register is
// only 8 bits wide so it doesn't need to be even.
var registerShiftPattern = regexp.MustCompile(`(?i)^(rol|[al]s[lr])r`)

// Software arguments starting with R are core registers passed at runtime,
// everything else is a template argument.
func isRuntimeArgument(name string) bool {
	return strings.HasPrefix(name, "R")
}

func isRegisterArgument(name string) bool {
	return utils.Contains(registerArguments, name)
}

// Returns the exclusive upper bound of a template argument of the given width
func upperBound(name string, width int) uint64 {
	if isRegisterArgument(name) {
		return RegisterFileSize
	}

	return uint64(1) << width
}

// Returns the arguments that must hold an even register number: registers
// used for 16/32 bit values and swizzle inputs.
func evenArguments(hardwareName, softwareName string) []string {
	switch {
	case strings.HasSuffix(softwareName, "_16"):
		if registerShiftPattern.MatchString(hardwareName) {
			return []string{"Dest", "Src0"}
		}

		return []string{"Dest", "Src0", "Src1"}
	case strings.HasSuffix(softwareName, "16_8"):
		return []string{"Src0"}
	case strings.Contains(softwareName, "swz_8"):
		return []string{"Src0", "Src1"}
	default:
		return nil
	}
}
