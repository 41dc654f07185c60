package database

import (
	"io"
	"strings"

	"github.com/Manu343726/copro/pkg/utils"
)

// First cell of the timings table header row
const TimingHeaderKey = "Instruction"

// Cycle count of an instruction at one pipeline stage, as written in the table
type TimingCell struct {
	Stage string
	Value string
}

// Pipeline timings table. The header row (first cell [TimingHeaderKey]) names
// the pipeline stage of every column; every other row gives the cycle counts
// of one hardware instruction at each stage.
type TimingTable struct {
	Stages []string
	rows   map[string][]string
}

// Reads a timings table from CSV
func ReadTimingTable(r io.Reader) (*TimingTable, error) {
	reader := newCsvReader(r)
	table := &TimingTable{rows: make(map[string][]string)}
	hasHeader := false

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, utils.MakeError(ErrMalformedTable, "reading timings: %v", err)
		}

		if len(row) == 0 {
			continue
		}

		key := strings.TrimPrefix(row[0], byteOrderMark)

		switch {
		case key == TimingHeaderKey:
			table.Stages = append([]string(nil), row[1:]...)
			hasHeader = true
		case key != "":
			table.rows[key] = append([]string(nil), row[1:]...)
		}
	}

	if !hasHeader && len(table.rows) > 0 {
		return nil, utils.MakeError(ErrMalformedTable, "timings table has no '%v' header row", TimingHeaderKey)
	}

	return table, nil
}

// Returns the timing cells of a hardware instruction in column order.
// Instructions without timings return no cells.
func (t *TimingTable) Cells(hardwareName string) []TimingCell {
	row := t.rows[hardwareName]
	cells := make([]TimingCell, len(row))

	for i, value := range row {
		cells[i].Value = value
		if i < len(t.Stages) {
			cells[i].Stage = t.Stages[i]
		}
	}

	return cells
}

// Returns true if the table has timings for the instruction
func (t *TimingTable) Has(hardwareName string) bool {
	_, ok := t.rows[hardwareName]
	return ok
}
