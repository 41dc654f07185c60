package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Manu343726/copro/pkg/hw/copro/database"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	d := loadTestDatabase(t)

	code, err := newTestGenerator(t, d).Render()
	require.NoError(t, err)
	header := string(code)

	assert.True(t, strings.HasPrefix(header, `//
// Copyright:
// ----------------------------------------------------------------------------
// This confidential and proprietary software may be used only as authorized
// by a licensing agreement from Arm Limited.
//      (C) COPYRIGHT 2021 Arm Limited
// The entire notice above must be reproduced on all authorized copies and
// copies may only be made to the extent permitted by a licensing agreement
// from Arm Limited.
// ----------------------------------------------------------------------------
//
// This file was automatically generated by copro

#pragma once

#include "ethosn_ple/utils.h"

namespace    // Internal linkage
{
namespace VE_TIMING
{
struct ADD_8
{
`), header)

	assert.Contains(t, header, "};\n\nstruct SUB_8\n")
	assert.Contains(t, header, "struct SET_ADDR\n{\n};\n\n}    // namespace VE_TIMING\n\n// Adds Src0 and Src1 into Dest.\n")
	assert.True(t, strings.HasSuffix(header, "    mcrr<CPNUM, op1, CRm>(Rt, Rt2);\n"+
		"    constexpr unsigned wbCycle = VE_TIMING::SET_ADDR::WRITE_BACK;\n"+
		"    nop<(COPRO_PIPELINE_DISABLE || (post_cc > wbCycle)) ? wbCycle : post_cc>();\n"+
		"}\n\n}    // namespace\n"), header)

	assert.Equal(t, d.Len(), strings.Count(header, "__inline_always void "))
}

func TestRender_Options(t *testing.T) {
	d := database.New()

	code, err := newTestGenerator(t, d, WithOptions(Options{
		Include:   "copro/intrinsics.h",
		Generator: "test",
		Preamble:  []string{"Copyright: ACME", ""},
	})).Render()
	require.NoError(t, err)

	assert.Equal(t, `// Copyright: ACME
//
//
// This file was automatically generated by test

#pragma once

#include "copro/intrinsics.h"

namespace    // Internal linkage
{
namespace VE_TIMING
{
}    // namespace VE_TIMING

}    // namespace
`, string(code))
}

func TestGenerate(t *testing.T) {
	d := loadTestDatabase(t)
	g := newTestGenerator(t, d)

	output := filepath.Join(t.TempDir(), "copro.h")
	require.NoError(t, g.Generate(output))

	written, err := os.ReadFile(output)
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, g.GenerateTo(&buffer))
	assert.Equal(t, buffer.Bytes(), written)
}

func TestGenerate_NothingWrittenOnError(t *testing.T) {
	d := loadTestDatabase(t)
	d.Add(instructions.NewPair("LDC.8", instructions.Class("LDC")))

	output := filepath.Join(t.TempDir(), "copro.h")
	err := newTestGenerator(t, d).Generate(output)
	assert.ErrorIs(t, err, instructions.ErrUnsupportedClass)
	assert.NoFileExists(t, output)

	var buffer bytes.Buffer
	assert.Error(t, newTestGenerator(t, d).GenerateTo(&buffer))
	assert.Zero(t, buffer.Len())
}
