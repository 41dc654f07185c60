package database

import (
	"errors"

	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

// Returned (wrapped) when a software bit has no hardware bit linked to it.
// Loaded databases never contain such bits, so this means the database is corrupt.
var ErrDecoderInvariant = errors.New("software bit not linked to any hardware bit")

// A software instruction recovered from hardware field values
type Decoded struct {
	Pair *instructions.Pair
	// Software instruction name
	Name string
	// Value of every software argument
	Arguments map[string]uint32
}

func fieldBit(fields map[string]uint32, field string, bit int) uint32 {
	value := fields[field]
	return utils.CreateBitView(&value).Bit(bit)
}

// Returns true if all constant bits of the hardware instruction match the field values
func matches(hw *instructions.HwInstruction, fields map[string]uint32) bool {
	for _, argument := range hw.Arguments() {
		for i, bit := range argument.Bits {
			if bit.IsConstant() && uint32(bit.Value) != fieldBit(fields, argument.Name, i) {
				return false
			}
		}
	}

	return true
}

// Computes the software argument values of a pair from hardware field values
func softwareArguments(pair *instructions.Pair, fields map[string]uint32) (map[string]uint32, error) {
	values := make(map[string]uint32, len(pair.Software.Arguments()))

	for _, argument := range pair.Software.Arguments() {
		var value uint32
		view := utils.CreateBitView(&value)

		for i, bit := range argument.Bits {
			if !bit.IsLinked() {
				return nil, utils.MakeError(ErrDecoderInvariant, "%v.%v[%v] is %v", pair.Software.Name, argument.Name, i, bit)
			}

			view.SetBit(i, fieldBit(fields, bit.Argument, bit.Index))
		}

		values[argument.Name] = value
	}

	return values, nil
}

// Finds the software instruction encoded by the given class and hardware
// field values. Fields missing from the map read as zero. Instructions are
// tried in table order and the first one whose constant bits all match wins.
// Returns nil if no instruction matches.
func (d *Database) Decode(class instructions.Class, fields map[string]uint32) (*Decoded, error) {
	for _, pair := range d.pairs {
		if pair.Hardware.Class != class || !matches(pair.Hardware, fields) {
			continue
		}

		arguments, err := softwareArguments(pair, fields)
		if err != nil {
			return nil, err
		}

		return &Decoded{
			Pair:      pair,
			Name:      pair.Software.Name,
			Arguments: arguments,
		}, nil
	}

	return nil, nil
}
