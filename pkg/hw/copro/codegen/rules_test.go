package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvenArguments(t *testing.T) {
	tests := []struct {
		hardware string
		software string
		expected []string
	}{
		{"ADD.16", "ve_add_16", []string{"Dest", "Src0", "Src1"}},
		{"ROLR.16", "ve_rolr_16", []string{"Dest", "Src0"}},
		{"asrr.16", "ve_asrr_16", []string{"Dest", "Src0"}},
		{"LSLR.16", "ve_lslr_16", []string{"Dest", "Src0"}},
		{"LSL.16", "ve_lsl_16", []string{"Dest", "Src0", "Src1"}},
		{"ASRSAT.16.8", "ve_asrsat_16_8", []string{"Src0"}},
		{"SWZ_8.A", "ve_swz_8_a", []string{"Src0", "Src1"}},
		{"ADD.8", "ve_add_8", nil},
	}

	for _, test := range tests {
		t.Run(test.hardware, func(t *testing.T) {
			assert.Equal(t, test.expected, evenArguments(test.hardware, test.software))
		})
	}
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, uint64(RegisterFileSize), upperBound("Dest", 5))
	assert.Equal(t, uint64(RegisterFileSize), upperBound("Src1", 3))
	assert.Equal(t, uint64(32), upperBound("Imm5", 5))
	assert.Equal(t, uint64(2), upperBound("flag", 1))
}

func TestIsRuntimeArgument(t *testing.T) {
	assert.True(t, isRuntimeArgument("Rt"))
	assert.True(t, isRuntimeArgument("Rt2"))
	assert.False(t, isRuntimeArgument("Src0"))
	assert.False(t, isRuntimeArgument("rt"))
}
