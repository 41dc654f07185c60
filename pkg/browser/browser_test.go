package browser

import (
	"testing"

	"github.com/Manu343726/copro/pkg/hw/copro/codegen"
	"github.com/Manu343726/copro/pkg/hw/copro/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrowser(t *testing.T) (*Browser, *database.Database) {
	t.Helper()

	d, err := database.Load(database.Sources{
		Encodings:    "../hw/copro/database/testdata/encodings.csv",
		Descriptions: "../hw/copro/database/testdata/descriptions.csv",
		Timings:      "../hw/copro/database/testdata/timings.csv",
	})
	require.NoError(t, err)

	g, err := codegen.NewGenerator(d)
	require.NoError(t, err)

	return New(d, g), d
}

func names(b *Browser, filter string) []string {
	var result []string
	for _, pair := range b.Matching(filter) {
		result = append(result, pair.Hardware.Name)
	}
	return result
}

func TestMatching(t *testing.T) {
	b, d := newTestBrowser(t)

	assert.Len(t, b.Matching(""), d.Len())
	assert.Equal(t, []string{"ADD.8"}, names(b, "add."))
	assert.Equal(t, []string{"SET_SWZSEL_REG_SEL", "SET_ADDR"}, names(b, "ve_set"))
	assert.Empty(t, names(b, "mul"))
}

func TestSections(t *testing.T) {
	b, d := newTestBrowser(t)

	pair, err := d.Pair("SUB.8")
	require.NoError(t, err)

	sections := b.Sections(pair)
	require.Len(t, sections, 4)

	assert.Equal(t, Section{"Description", "Subtracts Src1 from Src0"}, sections[0])
	assert.Equal(t, "Encoding", sections[1].Title)
	assert.Contains(t, sections[1].Body, "SUB.8 (CDP) <-> ve_sub_8")
	assert.Equal(t, Section{"Timings", "RF READ: 1\nEXECUTE: N/A\nRF, ACCU WRITE: 3\nCOMPLETE: 4"}, sections[2])
	assert.Equal(t, "Generated code", sections[3].Title)
	assert.Contains(t, sections[3].Body, "__inline_always void ve_sub_8()")
}

func TestSections_NoDescriptionNorTimings(t *testing.T) {
	b, d := newTestBrowser(t)

	pair, err := d.Pair("SET_ADDR")
	require.NoError(t, err)

	sections := b.Sections(pair)
	require.Len(t, sections, 2)
	assert.Equal(t, "Encoding", sections[0].Title)
	assert.Equal(t, "Generated code", sections[1].Title)
}
