package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// A named run of contiguous bits within a frame
type BitFrameField struct {
	// Name of the field
	Name string

	// First bit of the field
	Begin int

	// Field width in bits
	Width int
}

// The first bit after this field
func (f *BitFrameField) PastTopBit() int {
	return f.Begin + f.Width
}

// Bit range of the field in verilog notation
func (f *BitFrameField) Range() string {
	if f.Width == 1 {
		return fmt.Sprintf("[%v]", f.Begin)
	}

	return fmt.Sprintf("[%v:%v]", f.PastTopBit()-1, f.Begin)
}

var ErrInvalidFrame = errors.New("invalid bit frame")

func writeCentered(text string, length int, builder *strings.Builder) {
	left := (length - len(text)) / 2
	builder.WriteString(strings.Repeat(" ", left))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(" ", length-len(text)-left))
}

func fillBitFrameGaps(fields []BitFrameField, frameWidth int) ([]BitFrameField, error) {
	sorted := append([]BitFrameField(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })

	result := make([]BitFrameField, 0, len(sorted))
	currentBit := 0

	for _, field := range sorted {
		if field.Width <= 0 {
			return nil, MakeError(ErrInvalidFrame, "field '%v' has invalid width %v", field.Name, field.Width)
		}

		if field.Begin < currentBit {
			return nil, MakeError(ErrInvalidFrame, "field '%v' overlaps with a previous field", field.Name)
		}

		if field.Begin > currentBit {
			result = append(result, BitFrameField{
				Name:  "(unused)",
				Begin: currentBit,
				Width: field.Begin - currentBit,
			})
		}

		result = append(result, field)
		currentBit = field.PastTopBit()
	}

	if currentBit > frameWidth {
		return nil, MakeError(ErrInvalidFrame, "fields need %v bits but the frame is %v bits wide", currentBit, frameWidth)
	}

	if currentBit < frameWidth {
		result = append(result, BitFrameField{
			Name:  "(unused)",
			Begin: currentBit,
			Width: frameWidth - currentBit,
		})
	}

	return result, nil
}

// Draws an ascii diagram of a frame of bits split in named fields. The most
// significant bit is drawn on the left. Gaps between fields are drawn as unused.
//
//	+-----------+-----+
//	| Src0[3:1] |  1  |
//	|   [3:1]   | [0] |
//	+-----------+-----+
func BitFrame(fields []BitFrameField, frameWidth int, leftpad int) (string, error) {
	allFields, err := fillBitFrameGaps(fields, frameWidth)
	if err != nil {
		return "", err
	}

	pad := strings.Repeat(" ", leftpad)

	var border, names, ranges strings.Builder

	border.WriteString(pad)
	names.WriteString(pad)
	ranges.WriteString(pad)

	for i := len(allFields) - 1; i >= 0; i-- {
		field := &allFields[i]
		bitRange := field.Range()
		width := Max([]int{len(field.Name), len(bitRange)}) + 2

		border.WriteString("+")
		border.WriteString(strings.Repeat("-", width))
		names.WriteString("|")
		writeCentered(field.Name, width, &names)
		ranges.WriteString("|")
		writeCentered(bitRange, width, &ranges)
	}

	border.WriteString("+")
	names.WriteString("|")
	ranges.WriteString("|")

	var result strings.Builder

	for _, row := range []string{border.String(), names.String(), ranges.String(), border.String()} {
		result.WriteString(row)
		result.WriteString("\n")
	}

	return result.String(), nil
}
