// Package database builds the database of coprocessor instructions from the
// instruction set tables, and answers encode and decode queries against it.
//
// A database is populated once with the Load functions and is read only
// afterwards, so queries can run concurrently.
package database

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

var (
	ErrMissingColumn      = errors.New("missing column")
	ErrMalformedTable     = errors.New("malformed table")
	ErrUnknownInstruction = errors.New("unknown instruction")
)

// Names of the encodings table columns the database reads
type Columns struct {
	// Header of the first column of the window of columns read from the encodings table
	First string
	// Header of the column right after the end of the window. The column
	// before it is not read either.
	Last string
	// Column containing the coprocessor instruction class
	Class string
	// Columns containing the op1 and op2 hardware fields
	Opcode1 string
	Opcode2 string
	// Column using the immediate assignment syntax
	Immediate string
}

var DefaultColumns = Columns{
	First:     "Software",
	Last:      "Software Temp",
	Class:     "COPRO_INST",
	Opcode1:   "Opcode1",
	Opcode2:   "Opcode2",
	Immediate: "Immediate",
}

// Database of hardware/software instruction pairs plus their descriptions and
// pipeline timings, keyed by hardware instruction name
type Database struct {
	pairs          []*instructions.Pair
	byHardwareName map[string]*instructions.Pair
	bySoftwareName map[string]*instructions.Pair
	descriptions   map[string][]string
	timings        TimingTable

	columns               Columns
	descriptionTextColumn int
	logger                *slog.Logger
}

type Option func(*Database)

// Sets the logger used to report skipped rows. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) {
		d.logger = logger
	}
}

// Overrides the encodings table column names
func WithColumns(columns Columns) Option {
	return func(d *Database) {
		d.columns = columns
	}
}

// Sets the first column of the descriptions table holding description text.
// Columns before it (instruction name, legacy name) are not part of the description.
func WithDescriptionTextColumn(column int) Option {
	return func(d *Database) {
		d.descriptionTextColumn = column
	}
}

// Creates an empty database
func New(options ...Option) *Database {
	d := &Database{
		byHardwareName:        make(map[string]*instructions.Pair),
		bySoftwareName:        make(map[string]*instructions.Pair),
		descriptions:          make(map[string][]string),
		columns:               DefaultColumns,
		descriptionTextColumn: 2,
		logger:                slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// Appends an instruction pair. Pairs are kept in insertion order, which is
// the priority order used when decoding.
func (d *Database) Add(pair *instructions.Pair) {
	d.pairs = append(d.pairs, pair)

	if _, exists := d.byHardwareName[pair.Hardware.Name]; exists {
		d.logger.Warn("duplicated instruction, lookups by name return the first one", slog.String("instruction", pair.Hardware.Name))
	} else {
		d.byHardwareName[pair.Hardware.Name] = pair
	}

	if _, exists := d.bySoftwareName[pair.Software.Name]; !exists {
		d.bySoftwareName[pair.Software.Name] = pair
	}
}

// Returns all instruction pairs in table order
func (d *Database) Pairs() []*instructions.Pair {
	return append([]*instructions.Pair(nil), d.pairs...)
}

// Returns the number of instruction pairs
func (d *Database) Len() int {
	return len(d.pairs)
}

// Returns the pair of the given hardware instruction
func (d *Database) Pair(hardwareName string) (*instructions.Pair, error) {
	if pair, ok := d.byHardwareName[hardwareName]; ok {
		return pair, nil
	}

	return nil, utils.MakeError(ErrUnknownInstruction, "no hardware instruction named '%v'", hardwareName)
}

// Returns the pair of the given software instruction
func (d *Database) PairBySoftwareName(softwareName string) (*instructions.Pair, error) {
	if pair, ok := d.bySoftwareName[softwareName]; ok {
		return pair, nil
	}

	return nil, utils.MakeError(ErrUnknownInstruction, "no software instruction named '%v'", softwareName)
}

// Returns the description lines of a hardware instruction
func (d *Database) Description(hardwareName string) ([]string, bool) {
	description, ok := d.descriptions[hardwareName]
	return description, ok
}

// Sets the description lines of a hardware instruction
func (d *Database) SetDescription(hardwareName string, lines []string) {
	d.descriptions[hardwareName] = lines
}

// Returns the pipeline timings table
func (d *Database) Timings() *TimingTable {
	return &d.timings
}
