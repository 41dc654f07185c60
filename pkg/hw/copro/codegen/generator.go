// Package codegen generates the C++ header wrapping every coprocessor
// instruction of a database into an inline function: compile time argument
// checks, hardware field packing, the coprocessor intrinsic call and the
// pipeline stall after it.
package codegen

import (
	"bytes"
	"embed"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/Manu343726/copro/pkg/hw/copro/database"
)

//go:embed templates
var Templates embed.FS

type Options struct {
	// Header with the Bits, GetBit, nop and intrinsic definitions
	Include string
	// Tool name written in the generated file banner
	Generator string
	// Lines of the license banner at the top of the file, without comment markers
	Preamble []string
}

// License banner of the generated header
var DefaultPreamble = []string{
	"",
	"Copyright:",
	"----------------------------------------------------------------------------",
	"This confidential and proprietary software may be used only as authorized",
	"by a licensing agreement from Arm Limited.",
	"     (C) COPYRIGHT 2021 Arm Limited",
	"The entire notice above must be reproduced on all authorized copies and",
	"copies may only be made to the extent permitted by a licensing agreement",
	"from Arm Limited.",
	"----------------------------------------------------------------------------",
}

var DefaultOptions = Options{
	Include:   "ethosn_ple/utils.h",
	Generator: "copro",
	Preamble:  DefaultPreamble,
}

type header struct {
	Options
	Timings   []string
	Functions []string
}

type Generator struct {
	template *template.Template
	db       *database.Database
	options  Options
	logger   *slog.Logger
}

type Option func(*Generator)

func WithOptions(options Options) Option {
	return func(g *Generator) {
		g.options = options
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

func comment(line string) string {
	return strings.TrimRight("// "+line, " ")
}

func NewGenerator(db *database.Database, options ...Option) (*Generator, error) {
	t, err := template.New("header.h.tmpl").
		Funcs(template.FuncMap{"Comment": comment}).
		ParseFS(Templates, "templates/header.h.tmpl")

	if err != nil {
		return nil, err
	}

	g := &Generator{
		template: t,
		db:       db,
		options:  DefaultOptions,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(g)
	}

	return g, nil
}

// Renders the whole header. Nothing is returned if any instruction fails.
func (g *Generator) Render() ([]byte, error) {
	data := header{Options: g.options}

	for _, pair := range g.db.Pairs() {
		timing, err := g.Timing(pair)
		if err != nil {
			return nil, err
		}

		data.Timings = append(data.Timings, timing)
	}

	for _, pair := range g.db.Pairs() {
		function, err := g.Function(pair)
		if err != nil {
			return nil, err
		}

		data.Functions = append(data.Functions, function)
	}

	var out bytes.Buffer
	if err := g.template.Execute(&out, &data); err != nil {
		return nil, err
	}

	g.logger.Info("generated header", slog.Int("instructions", len(data.Functions)), slog.Int("bytes", out.Len()))
	return out.Bytes(), nil
}

func (g *Generator) GenerateTo(writer io.Writer) error {
	code, err := g.Render()
	if err != nil {
		return err
	}

	_, err = writer.Write(code)
	return err
}

// Renders the header and writes it to the given file. The file is not
// touched if rendering fails.
func (g *Generator) Generate(outputFile string) error {
	code, err := g.Render()
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, code, 0o644)
}
