package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitFrame_SingleField(t *testing.T) {
	actual, err := BitFrame([]BitFrameField{{Name: "CRd", Begin: 0, Width: 4}}, 4, 0)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"+-------+\n"+
		"|  CRd  |\n"+
		"| [3:0] |\n"+
		"+-------+\n",
		actual)
}

func TestBitFrame_MostSignificantFieldOnTheLeft(t *testing.T) {
	fields := []BitFrameField{
		{Name: "1", Begin: 0, Width: 1},
		{Name: "Src0[3:1]", Begin: 1, Width: 3},
	}

	actual, err := BitFrame(fields, 4, 2)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"  +-----------+-----+\n"+
		"  | Src0[3:1] |  1  |\n"+
		"  |   [3:1]   | [0] |\n"+
		"  +-----------+-----+\n",
		actual)
}

func TestBitFrame_GapsAreUnused(t *testing.T) {
	actual, err := BitFrame([]BitFrameField{{Name: "x", Begin: 1, Width: 1}}, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"+----------+-----+----------+\n"+
		"| (unused) |  x  | (unused) |\n"+
		"|   [2]    | [1] |   [0]    |\n"+
		"+----------+-----+----------+\n",
		actual)
}

func TestBitFrame_Errors(t *testing.T) {
	t.Run("overlap", func(t *testing.T) {
		_, err := BitFrame([]BitFrameField{{Name: "a", Begin: 0, Width: 2}, {Name: "b", Begin: 1, Width: 2}}, 4, 0)
		assert.ErrorIs(t, err, ErrInvalidFrame)
	})

	t.Run("too wide", func(t *testing.T) {
		_, err := BitFrame([]BitFrameField{{Name: "a", Begin: 0, Width: 5}}, 4, 0)
		assert.ErrorIs(t, err, ErrInvalidFrame)
	})

	t.Run("empty field", func(t *testing.T) {
		_, err := BitFrame([]BitFrameField{{Name: "a", Begin: 0, Width: 0}}, 4, 0)
		assert.ErrorIs(t, err, ErrInvalidFrame)
	})
}
