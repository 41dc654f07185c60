package database

import (
	"io"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Bits are listed least significant first
type dumpArgument struct {
	Name string   `yaml:"name"`
	Bits []string `yaml:"bits,flow"`
}

type dumpInstruction struct {
	Name      string         `yaml:"name"`
	Class     string         `yaml:"class,omitempty"`
	Arguments []dumpArgument `yaml:"arguments"`
}

type dumpPair struct {
	Hardware    dumpInstruction   `yaml:"hardware"`
	Software    dumpInstruction   `yaml:"software"`
	Description []string          `yaml:"description,omitempty"`
	Timings     map[string]string `yaml:"timings,omitempty"`
}

type dump struct {
	Instructions []dumpPair `yaml:"instructions"`
}

func dumpArguments(instruction *instructions.Instruction) []dumpArgument {
	return utils.Map(instruction.Arguments(), func(argument *instructions.Argument) dumpArgument {
		return dumpArgument{
			Name: argument.Name,
			Bits: utils.Map(argument.Bits, bits.Bit.String),
		}
	})
}

// Writes the whole database as YAML, one entry per instruction pair in table order
func (d *Database) DumpYAML(w io.Writer) error {
	doc := dump{Instructions: make([]dumpPair, 0, len(d.pairs))}

	for _, pair := range d.pairs {
		entry := dumpPair{
			Hardware: dumpInstruction{
				Name:      pair.Hardware.Name,
				Class:     string(pair.Hardware.Class),
				Arguments: dumpArguments(pair.Hardware.Instruction),
			},
			Software: dumpInstruction{
				Name:      pair.Software.Name,
				Arguments: dumpArguments(pair.Software),
			},
		}

		entry.Description, _ = d.Description(pair.Hardware.Name)

		for _, cell := range d.timings.Cells(pair.Hardware.Name) {
			if cell.Value == "" {
				continue
			}

			if entry.Timings == nil {
				entry.Timings = make(map[string]string)
			}

			entry.Timings[cell.Stage] = cell.Value
		}

		doc.Instructions = append(doc.Instructions, entry)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(&doc); err != nil {
		return err
	}

	return encoder.Close()
}
