package database

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

// Spreadsheet exports may start with a UTF-8 byte order mark
const byteOrderMark = "\ufeff"

// Paths of the instruction set tables. Only Encodings is mandatory.
type Sources struct {
	Encodings    string
	Descriptions string
	Timings      string
}

func newCsvReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

func window(row []string, begin, end int) []string {
	result := make([]string, end-begin)

	for i := begin; i < end && i < len(row); i++ {
		result[i-begin] = row[i]
	}

	return result
}

// Returns true if the error is a row level error: the row is malformed but
// the rest of the table can still be loaded
func isRowError(err error) bool {
	return errors.Is(err, bits.ErrFormat) || errors.Is(err, instructions.ErrConsistency)
}

// Loads the encodings table. The first row is the header, which locates the
// window of columns to read; the second row gives the field name of every
// column. Malformed rows are logged and skipped.
func (d *Database) LoadEncodings(r io.Reader) error {
	reader := newCsvReader(r)

	header, err := reader.Read()
	if err != nil {
		return utils.MakeError(ErrMalformedTable, "reading encodings header: %v", err)
	}

	first, last := -1, -1
	for i, cell := range header {
		switch strings.TrimPrefix(cell, byteOrderMark) {
		case d.columns.First:
			if first < 0 {
				first = i
			}
		case d.columns.Last:
			if last < 0 {
				last = i - 1
			}
		}
	}

	if first < 0 || last < 0 {
		return utils.MakeError(ErrMissingColumn, "encodings header needs both '%v' and '%v' columns", d.columns.First, d.columns.Last)
	}

	if last < first {
		return utils.MakeError(ErrMalformedTable, "'%v' column must come after '%v'", d.columns.Last, d.columns.First)
	}

	subHeadings, err := reader.Read()
	if err != nil {
		return utils.MakeError(ErrMalformedTable, "reading encodings sub-headings: %v", err)
	}

	headings := window(subHeadings, first, last)
	layout, err := d.layout(headings)
	if err != nil {
		return err
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return utils.MakeError(ErrMalformedTable, "reading encodings: %v", err)
		}

		fields := window(row, first, last)

		pair, err := layout.process(fields)
		if err != nil {
			if !isRowError(err) {
				return err
			}

			d.logger.Error("skipping instruction", slog.String("instruction", fields[0]), slog.Any("error", err))
			continue
		}

		if pair != nil {
			d.logger.Debug("loaded instruction", slog.String("instruction", pair.Hardware.Name), slog.String("software", pair.Software.Name))
			d.Add(pair)
		}
	}

	d.logger.Info("loaded encodings", slog.Int("instructions", d.Len()))
	return nil
}

// Loads the descriptions table: instruction name in the first column, free
// text lines from the description text column onwards. Empty cells are ignored.
func (d *Database) LoadDescriptions(r io.Reader) error {
	reader := newCsvReader(r)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return utils.MakeError(ErrMalformedTable, "reading descriptions: %v", err)
		}

		if len(row) == 0 || row[0] == "" {
			continue
		}

		var lines []string
		if len(row) > d.descriptionTextColumn {
			lines = utils.Filter(row[d.descriptionTextColumn:], func(cell string) bool { return cell != "" })
		}

		d.descriptions[strings.TrimPrefix(row[0], byteOrderMark)] = lines
	}
}

// Loads the timings table, see [TimingTable]
func (d *Database) LoadTimings(r io.Reader) error {
	table, err := ReadTimingTable(r)
	if err != nil {
		return err
	}

	d.timings = *table
	return nil
}

func loadFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := load(f); err != nil {
		return utils.MakeError(err, "loading '%v'", path)
	}

	return nil
}

// Builds a database from the tables at the given paths. Descriptions and
// timings are optional and skipped if their path is empty.
func Load(sources Sources, options ...Option) (*Database, error) {
	d := New(options...)

	if sources.Descriptions != "" {
		if err := loadFile(sources.Descriptions, d.LoadDescriptions); err != nil {
			return nil, err
		}
	}

	if sources.Timings != "" {
		if err := loadFile(sources.Timings, d.LoadTimings); err != nil {
			return nil, err
		}
	}

	if err := loadFile(sources.Encodings, d.LoadEncodings); err != nil {
		return nil, err
	}

	return d, nil
}
