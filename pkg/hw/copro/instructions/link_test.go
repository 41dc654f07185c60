package instructions

import (
	"testing"

	"github.com/Manu343726/copro/pkg/hw/copro/bits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedRange(name string, lsb, msb int) []bits.Bit {
	var result []bits.Bit
	for i := lsb; i <= msb; i++ {
		result = append(result, bits.Linked(name, i))
	}
	return result
}

func TestAddArgument_CreatesReciprocalLinks(t *testing.T) {
	pair := NewPair("ADD.8", Class_CDP)

	dest, err := bits.ParseField("CPNUM[2],CRd[3:0]")
	require.NoError(t, err)
	require.NoError(t, pair.AddSoftwareArgument("Dest", dest))

	crd, ok := pair.Hardware.Argument("CRd")
	require.True(t, ok)
	assert.Equal(t, linkedRange("Dest", 0, 3), crd.Bits)

	cpnum, ok := pair.Hardware.Argument("CPNUM")
	require.True(t, ok)
	assert.Equal(t, []bits.Bit{bits.Unset, bits.Unset, bits.Linked("Dest", 4)}, cpnum.Bits)

	assert.NoError(t, pair.CheckLinks())
}

func TestAddArgument_RedefinitionIsIdempotent(t *testing.T) {
	pair := NewPair("SET_SWZSEL_REG_SEL", Class_MCR)

	// opcodes define the link from the hardware side...
	require.NoError(t, pair.AddHardwareArgument("op1", []bits.Bit{bits.Linked("swzsel", 3), bits.Constant(1), bits.Constant(0)}))
	require.NoError(t, pair.AddHardwareArgument("op2", linkedRange("swzsel", 0, 2)))
	// ...and the swzsel column repeats it from the software side
	require.NoError(t, pair.AddSoftwareArgument("swzsel", []bits.Bit{
		bits.Linked("op2", 0), bits.Linked("op2", 1), bits.Linked("op2", 2), bits.Linked("op1", 0),
	}))

	swzsel, ok := pair.Software.Argument("swzsel")
	require.True(t, ok)
	assert.Equal(t, []bits.Bit{bits.Linked("op2", 0), bits.Linked("op2", 1), bits.Linked("op2", 2), bits.Linked("op1", 0)}, swzsel.Bits)
	assert.NoError(t, pair.CheckLinks())
}

func TestAddArgument_ConflictingRedefinition(t *testing.T) {
	pair := NewPair("BAD", Class_CDP)

	require.NoError(t, pair.AddHardwareArgument("op1", []bits.Bit{bits.Constant(0), bits.Constant(1)}))

	err := pair.AddHardwareArgument("op1", []bits.Bit{bits.Constant(1)})
	assert.ErrorIs(t, err, ErrConsistency)

	// the existing definition is kept
	op1, _ := pair.Hardware.Argument("op1")
	assert.Equal(t, []bits.Bit{bits.Constant(0), bits.Constant(1)}, op1.Bits)
}

func TestAddArgument_ConflictingReciprocal(t *testing.T) {
	pair := NewPair("BAD", Class_CDP)

	require.NoError(t, pair.AddSoftwareArgument("Src0", linkedRange("CRn", 0, 3)))

	// CRn[0] already links back to Src0[0]
	err := pair.AddSoftwareArgument("Src1", []bits.Bit{bits.Linked("CRn", 0)})
	assert.ErrorIs(t, err, ErrConsistency)
}

func TestAddArgument_ConflictLeavesPairUntouched(t *testing.T) {
	pair := NewPair("BAD", Class_CDP)
	require.NoError(t, pair.AddSoftwareArgument("Src0", linkedRange("CRn", 0, 3)))

	// CRm[1:0] would be written before the CRn[0] conflict is found
	err := pair.AddSoftwareArgument("Src1", []bits.Bit{bits.Linked("CRm", 0), bits.Linked("CRm", 1), bits.Linked("CRn", 0)})
	assert.ErrorIs(t, err, ErrConsistency)

	assert.Equal(t, []string{"Src0"}, pair.Software.ArgumentNames())
	assert.Equal(t, []string{"CRn"}, pair.Hardware.ArgumentNames())
	assert.NoError(t, pair.CheckLinks())
}

func TestAddArgument_CollidingReciprocals(t *testing.T) {
	pair := NewPair("BAD", Class_CDP)

	err := pair.AddSoftwareArgument("Src0", []bits.Bit{bits.Linked("CRn", 0), bits.Linked("CRn", 0)})
	assert.ErrorIs(t, err, ErrConsistency)

	assert.Empty(t, pair.Software.ArgumentNames())
	assert.Empty(t, pair.Hardware.ArgumentNames())
}

func TestArgument_Merge(t *testing.T) {
	argument := NewArgument("x")

	require.NoError(t, argument.SetBit(2, bits.Constant(1)))
	assert.Equal(t, []bits.Bit{bits.Unset, bits.Unset, bits.Constant(1)}, argument.Bits)

	require.NoError(t, argument.Merge([]bits.Bit{bits.Constant(0), bits.Unset, bits.Constant(1)}))
	assert.Equal(t, []bits.Bit{bits.Constant(0), bits.Unset, bits.Constant(1)}, argument.Bits)

	err := argument.Merge([]bits.Bit{bits.Constant(0), bits.Constant(1), bits.Constant(0)})
	assert.ErrorIs(t, err, ErrConsistency)
	assert.Equal(t, []bits.Bit{bits.Constant(0), bits.Unset, bits.Constant(1)}, argument.Bits, "failed merges leave the argument untouched")
}

func TestCheckLinks_DetectsAsymmetry(t *testing.T) {
	hw := NewInstruction("HW")
	sw := NewInstruction("SW")

	require.NoError(t, hw.SetArgument("CRn", []bits.Bit{bits.Linked("Src0", 0)}))
	assert.ErrorIs(t, CheckLinks(hw, sw), ErrConsistency)

	require.NoError(t, sw.SetArgument("Src0", []bits.Bit{bits.Linked("CRm", 0)}))
	assert.ErrorIs(t, CheckLinks(hw, sw), ErrConsistency)
}

func TestPair_Canonicalize(t *testing.T) {
	pair := NewPair("X", Class_MCR)

	for _, name := range []string{"Rt", "CRm", "op1", "CPNUM"} {
		pair.Hardware.ArgumentOrAdd(name)
	}
	for _, name := range []string{"swzsel", "Rt", "Src1", "Dest"} {
		pair.Software.ArgumentOrAdd(name)
	}

	pair.Canonicalize()

	assert.Equal(t, []string{"CPNUM", "op1", "CRm", "Rt"}, pair.Hardware.ArgumentNames())
	assert.Equal(t, []string{"Dest", "Src1", "Rt", "swzsel"}, pair.Software.ArgumentNames())
}

func TestSoftwareName(t *testing.T) {
	assert.Equal(t, "ve_add_8", SoftwareName("ADD.8"))
	assert.Equal(t, "ve_asrsat_16_8", SoftwareName("ASRSAT.16.8"))
	assert.Equal(t, "ve_set_swzsel_reg_sel", SoftwareName("SET_SWZSEL_REG_SEL"))
}

func TestClass(t *testing.T) {
	fields, err := Class_MCRR2.Fields()
	require.NoError(t, err)
	assert.Equal(t, []string{"CPNUM", "op1", "CRm"}, fields)
	assert.Equal(t, []string{"Rt", "Rt2"}, Class_MCRR.Registers())
	assert.Empty(t, Class_CDP.Registers())
	assert.Equal(t, "cdp2", Class_CDP2.Intrinsic())

	_, err = Class("LDC").Fields()
	assert.ErrorIs(t, err, ErrUnsupportedClass)
	assert.False(t, Class("LDC").Valid())
}

func TestPair_Clone(t *testing.T) {
	pair := NewPair("X", Class_CDP)
	require.NoError(t, pair.AddHardwareArgument("op1", []bits.Bit{bits.Constant(1)}))

	clone := pair.Clone()
	op1, _ := clone.Hardware.Argument("op1")
	op1.Bits[0] = bits.Constant(0)

	original, _ := pair.Hardware.Argument("op1")
	assert.Equal(t, bits.Constant(1), original.Bits[0])
	assert.Equal(t, Class_CDP, clone.Hardware.Class)
}
