package database

import (
	"testing"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// IMAG.16 (MCR): CPNUM = Src0[3:0], op1 = {1, swArg[1:0]}, CRn = 1, Rt = Rt
func imagPair(t *testing.T) *instructions.Pair {
	t.Helper()

	pair := instructions.NewPair("IMAG.16", instructions.Class_MCR)
	hw, sw := pair.Hardware, pair.Software

	require.NoError(t, hw.SetArgument("CPNUM", linked("Src0", 0, 3)))
	require.NoError(t, hw.SetArgument("op1", []bits.Bit{bits.Linked("swArg", 0), bits.Linked("swArg", 1), bits.Constant(1)}))
	require.NoError(t, hw.SetArgument("CRn", []bits.Bit{bits.Constant(1), bits.Constant(0), bits.Constant(0), bits.Constant(0)}))
	require.NoError(t, hw.SetArgument("Rt", linked("Rt", 0, 4)))

	require.NoError(t, sw.SetArgument("Rt", linked("Rt", 0, 4)))
	require.NoError(t, sw.SetArgument("Src0", linked("CPNUM", 0, 3)))
	require.NoError(t, sw.SetArgument("swArg", linked("op1", 0, 1)))

	require.NoError(t, pair.CheckLinks())
	return pair
}

func TestDecode_SkipsDecoys(t *testing.T) {
	pair := imagPair(t)

	wrongClass := pair.Clone()
	wrongClass.Hardware.Name = "WRONG_CLASS"
	wrongClass.Software.Name = "ve_wrong_class"
	wrongClass.Hardware.Class = instructions.Class_CDP

	wrongOpcode := pair.Clone()
	wrongOpcode.Hardware.Name = "WRONG_OPCODE"
	wrongOpcode.Software.Name = "ve_wrong_opcode"
	op1, ok := wrongOpcode.Hardware.Argument("op1")
	require.True(t, ok)
	op1.Bits[2] = bits.Constant(0)

	later := pair.Clone()
	later.Hardware.Name = "LATER"
	later.Software.Name = "ve_later"

	d := New()
	d.Add(wrongClass)
	d.Add(wrongOpcode)
	d.Add(pair)
	d.Add(later)

	decoded, err := d.Decode(instructions.Class_MCR, map[string]uint32{"CPNUM": 6, "op1": 7, "CRn": 1, "Rt": 3})
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, "ve_imag_16", decoded.Name)
	assert.Same(t, pair, decoded.Pair)
	assert.Equal(t, map[string]uint32{"Rt": 3, "Src0": 6, "swArg": 3}, decoded.Arguments)
}

func TestDecode_NoMatch(t *testing.T) {
	d := New()
	d.Add(imagPair(t))

	decoded, err := d.Decode(instructions.Class_MCR, map[string]uint32{"CPNUM": 6, "op1": 3, "CRn": 1})
	assert.NoError(t, err)
	assert.Nil(t, decoded)

	decoded, err = d.Decode(instructions.Class_MCR2, map[string]uint32{"CPNUM": 6, "op1": 7, "CRn": 1})
	assert.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecode_MissingFieldsReadAsZero(t *testing.T) {
	d := loadTestDatabase(t)

	decoded, err := d.Decode(instructions.Class_CDP, map[string]uint32{"op1": 1, "CRn": 2})
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, "ve_sub_8", decoded.Name)
	assert.Equal(t, map[string]uint32{"Dest": 0, "Src0": 2, "Src1": 0}, decoded.Arguments)
}

func TestDecode_UnlinkedSoftwareBit(t *testing.T) {
	pair := instructions.NewPair("BROKEN", instructions.Class_CDP)
	require.NoError(t, pair.Hardware.SetArgument("CRn", []bits.Bit{bits.Linked("Src0", 1)}))
	require.NoError(t, pair.Software.SetArgument("Src0", []bits.Bit{bits.Unset, bits.Linked("CRn", 0)}))

	d := New()
	d.Add(pair)

	_, err := d.Decode(instructions.Class_CDP, map[string]uint32{})
	assert.ErrorIs(t, err, ErrDecoderInvariant)
}
