// Package utils provides utility functions for the copro project.
package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// C++ syntax highlighting colors
var (
	cppKeywordColor      = color.New(color.FgMagenta, color.Bold)
	cppTypeColor         = color.New(color.FgCyan)
	cppStringColor       = color.New(color.FgGreen)
	cppNumberColor       = color.New(color.FgYellow)
	cppCommentColor      = color.New(color.FgHiBlack)
	cppPreprocessorColor = color.New(color.FgBlue)
	cppFunctionColor     = color.New(color.FgHiYellow)
)

// Keywords found in generated coprocessor headers
var cppKeywords = map[string]bool{
	"namespace": true, "template": true, "constexpr": true, "static": true,
	"static_assert": true, "struct": true, "inline": true, "return": true,
	"__inline_always": true, "const": true, "if": true, "else": true,
}

var cppTypes = map[string]bool{
	"void": true, "unsigned": true, "int": true, "bool": true,
	"uint32_t": true, "true": true, "false": true,
}

var (
	cppStringPattern       = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	cppCommentPattern      = regexp.MustCompile(`//[^\n]*|/\*(?:[^*]|\*[^/])*\*/`)
	cppPreprocessorPattern = regexp.MustCompile(`(?m)^\s*#\s*\w+`)
	cppNumberPattern       = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|[0-9]+)[uUlL]*\b`)
	cppFunctionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*[(<]`)
	cppIdentifierPattern   = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
)

type token struct {
	color *color.Color
	start int
	end   int
}

type tokenizer struct {
	code   string
	tokens []token
}

func (t *tokenizer) overlaps(start, end int) bool {
	for _, other := range t.tokens {
		if start < other.end && end > other.start {
			return true
		}
	}

	return false
}

func (t *tokenizer) add(start, end int, c *color.Color) {
	if c != nil && !t.overlaps(start, end) {
		t.tokens = append(t.tokens, token{color: c, start: start, end: end})
	}
}

// Adds all matches of a pattern. Earlier passes take priority over later ones
func (t *tokenizer) pass(pattern *regexp.Regexp, c *color.Color) {
	for _, match := range pattern.FindAllStringIndex(t.code, -1) {
		t.add(match[0], match[1], c)
	}
}

func (t *tokenizer) String() string {
	sort.Slice(t.tokens, func(i, j int) bool { return t.tokens[i].start < t.tokens[j].start })

	var result strings.Builder
	pos := 0

	for _, tok := range t.tokens {
		result.WriteString(t.code[pos:tok.start])
		result.WriteString(tok.color.Sprint(t.code[tok.start:tok.end]))
		pos = tok.end
	}

	result.WriteString(t.code[pos:])

	return result.String()
}

// Applies syntax highlighting to C++ source code and returns the colored string
func HighlightCppCode(code string) string {
	t := tokenizer{code: code}

	t.pass(cppCommentPattern, cppCommentColor)
	t.pass(cppStringPattern, cppStringColor)
	t.pass(cppPreprocessorPattern, cppPreprocessorColor)
	t.pass(cppNumberPattern, cppNumberColor)

	for _, match := range cppFunctionCallPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[match[2]:match[3]]
		if !cppKeywords[name] && !cppTypes[name] {
			t.add(match[2], match[3], cppFunctionColor)
		}
	}

	for _, match := range cppIdentifierPattern.FindAllStringIndex(code, -1) {
		word := code[match[0]:match[1]]
		switch {
		case cppKeywords[word]:
			t.add(match[0], match[1], cppKeywordColor)
		case cppTypes[word]:
			t.add(match[0], match[1], cppTypeColor)
		}
	}

	return t.String()
}
