package database

import (
	"fmt"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

// Positions of the fixed columns within a row window
type rowLayout struct {
	class     int
	opcode1   int
	opcode2   int
	headings  []string
	immediate string
}

func (d *Database) layout(headings []string) (*rowLayout, error) {
	index := func(name string) (int, error) {
		for i, heading := range headings {
			if heading == name {
				return i, nil
			}
		}

		return -1, utils.MakeError(ErrMissingColumn, "no '%v' column in %v", name, headings)
	}

	layout := &rowLayout{headings: headings, immediate: d.columns.Immediate}
	var err error

	if layout.class, err = index(d.columns.Class); err != nil {
		return nil, err
	}
	if layout.opcode1, err = index(d.columns.Opcode1); err != nil {
		return nil, err
	}
	if layout.opcode2, err = index(d.columns.Opcode2); err != nil {
		return nil, err
	}

	return layout, nil
}

// Builds the instruction pair described by one row of the encodings table.
// fields and headings cover the same window of columns; the first field is
// the hardware instruction name. Returns a nil pair for blank rows.
func (l *rowLayout) process(fields []string) (*instructions.Pair, error) {
	cell := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}

		return ""
	}

	name := cell(0)
	if name == "" {
		return nil, nil
	}

	class := instructions.Class(cell(l.class))
	pair := instructions.NewPair(name, class)

	// MCR/MCRR rows have no columns for the core registers, they map 1:1 to
	// software arguments with the same name
	for _, register := range class.Registers() {
		registerBits, err := bits.ParseField(fmt.Sprintf("%v[%v:0]", register, instructions.RegisterFieldBits-1))
		if err != nil {
			return nil, err
		}

		if err := pair.AddHardwareArgument(register, registerBits); err != nil {
			return nil, err
		}
	}

	// opcodes are usually constants, but may reference software arguments
	// that have no column of their own
	for _, opcode := range []struct {
		argument string
		column   int
	}{{"op1", l.opcode1}, {"op2", l.opcode2}} {
		expr := cell(opcode.column)
		if expr == "" {
			continue
		}

		opcodeBits, err := bits.ParseField(expr)
		if err != nil {
			return nil, err
		}

		if err := pair.AddHardwareArgument(opcode.argument, opcodeBits); err != nil {
			return nil, err
		}
	}

	// every column after Opcode2 is named after a software argument
	for i := l.opcode2 + 1; i < len(l.headings); i++ {
		argument, expr := l.headings[i], cell(i)
		if argument == "" || expr == "" {
			continue
		}

		var argumentBits []bits.Bit
		var err error

		if argument == l.immediate {
			argument, argumentBits, err = bits.ParseImmediate(expr)
		} else {
			argumentBits, err = bits.ParseField(expr)
		}

		if err != nil {
			return nil, err
		}

		if err := pair.AddSoftwareArgument(argument, argumentBits); err != nil {
			return nil, err
		}
	}

	pair.Canonicalize()
	return pair, nil
}

// Parses one row of the encodings table and appends the resulting pair.
// Blank rows are ignored. On error the database is left unchanged.
func (d *Database) ProcessRow(fields []string, headings []string) error {
	layout, err := d.layout(headings)
	if err != nil {
		return err
	}

	pair, err := layout.process(fields)
	if err != nil {
		return utils.MakeError(err, "row '%v'", fields[0])
	}

	if pair != nil {
		d.Add(pair)
	}

	return nil
}
