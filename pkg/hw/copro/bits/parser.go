package bits

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Manu343726/copro/pkg/utils"
)

// Returned (wrapped) when a bitfield or immediate expression cannot be parsed
var ErrFormat = errors.New("unexpected bitfield format")

var (
	constantRegex = regexp.MustCompile(`^(?P<numbits>\d+)'(?P<base>[hbdo])(?P<value>[0-9A-Fa-f]+)$`)
	variableRegex = regexp.MustCompile(`^(?P<name>\w+)\[(?P<msb>\d+)(:(?P<lsb>\d+))?\]$`)
)

// Highest bit index a variable reference may name. Argument values are 32 bits wide.
const MaxBitIndex = 31

var literalBases = map[string]int{
	"h": 16,
	"b": 2,
	"d": 10,
	"o": 8,
}

// Parses a bitfield expression like "2'b1, swzsel[3]" into its bits, least
// significant bit first. Segments are written most significant first, so the
// last segment of the expression becomes the lowest bits of the result.
func ParseField(expr string) ([]Bit, error) {
	var result []Bit

	for _, segment := range utils.Reversed(strings.Split(expr, ",")) {
		bits, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}

		result = append(result, bits...)
	}

	return result, nil
}

// Parses a single segment of a bitfield: a sized literal ("5'h9") or a
// reference to a range of bits of a variable ("bob[2:1]", "bob[3]")
func parseSegment(segment string) ([]Bit, error) {
	segment = strings.TrimSpace(segment)

	if match := constantRegex.FindStringSubmatch(segment); match != nil {
		return parseConstant(segment, match)
	}

	if match := variableRegex.FindStringSubmatch(segment); match != nil {
		return parseVariable(segment, match)
	}

	return nil, utils.MakeError(ErrFormat, "'%v' is neither a sized literal nor a variable bit range", segment)
}

func parseConstant(segment string, match []string) ([]Bit, error) {
	numBits, err := strconv.Atoi(match[constantRegex.SubexpIndex("numbits")])
	if err != nil || numBits <= 0 || numBits > 64 {
		return nil, utils.MakeError(ErrFormat, "invalid literal width in '%v'", segment)
	}

	base := literalBases[match[constantRegex.SubexpIndex("base")]]
	value, err := strconv.ParseUint(match[constantRegex.SubexpIndex("value")], base, 64)
	if err != nil {
		return nil, utils.MakeError(ErrFormat, "invalid literal value in '%v': %v", segment, err)
	}

	if numBits < 64 && value>>numBits != 0 {
		return nil, utils.MakeError(ErrFormat, "literal '%v' does not fit in %v bits", segment, numBits)
	}

	return utils.Iota(numBits, func(i int) Bit {
		return Constant(uint8((value >> i) & 1))
	}), nil
}

func parseVariable(segment string, match []string) ([]Bit, error) {
	name := match[variableRegex.SubexpIndex("name")]

	msb, err := strconv.Atoi(match[variableRegex.SubexpIndex("msb")])
	if err != nil {
		return nil, utils.MakeError(ErrFormat, "invalid bit index in '%v'", segment)
	}

	// foo[3] is foo[3:3]
	lsb := msb
	if lsbText := match[variableRegex.SubexpIndex("lsb")]; lsbText != "" {
		if lsb, err = strconv.Atoi(lsbText); err != nil {
			return nil, utils.MakeError(ErrFormat, "invalid bit index in '%v'", segment)
		}
	}

	if lsb > msb {
		return nil, utils.MakeError(ErrFormat, "bit range of '%v' is reversed", segment)
	}

	if msb > MaxBitIndex {
		return nil, utils.MakeError(ErrFormat, "bit index %v in '%v' is out of range, arguments have at most %v bits", msb, segment, MaxBitIndex+1)
	}

	return utils.Iota(msb-lsb+1, func(i int) Bit {
		return Linked(name, lsb+i)
	}), nil
}

// Parses an immediate assignment like "Imm5[4:0]=CPNUM[0], CRm[3:0]". The left
// side names the software argument and must cover its bits from 0 upwards
// without gaps; the right side is an ordinary bitfield of the same width.
// Returns the argument name and the right side bits.
func ParseImmediate(expr string) (string, []Bit, error) {
	sides := strings.Split(expr, "=")
	if len(sides) != 2 {
		return "", nil, utils.MakeError(ErrFormat, "immediate '%v' must have the form name[hi:lo]=bitfield", expr)
	}

	lhs, err := ParseField(sides[0])
	if err != nil {
		return "", nil, err
	}

	rhs, err := ParseField(sides[1])
	if err != nil {
		return "", nil, err
	}

	if len(lhs) != len(rhs) {
		return "", nil, utils.MakeError(ErrFormat, "immediate '%v' has %v bits on the left side and %v on the right side", expr, len(lhs), len(rhs))
	}

	if len(lhs) == 0 || !lhs[0].IsLinked() {
		return "", nil, utils.MakeError(ErrFormat, "immediate '%v' left side must be an argument reference", expr)
	}

	name := lhs[0].Argument
	for i, bit := range lhs {
		if bit != Linked(name, i) {
			return "", nil, utils.MakeError(ErrFormat, "immediate '%v' left side must be a single contiguous argument starting at bit 0", expr)
		}
	}

	return name, rhs, nil
}
