// Package goldmark reads fenced code blocks out of docstring prose using the
// goldmark Markdown parser.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Fence is a fenced code block found in a Markdown document.
type Fence struct {
	// Opener is the offset of the first byte of the opening fence line,
	// or -1 when it could not be located.
	Opener int

	// OpenerEnd is the offset just past the opening fence line's text.
	OpenerEnd int

	// Marker is the fence run, e.g. "```" or "~~~~".
	Marker string

	// Info is the full info string after the marker.
	Info string

	// Code is the block's content.
	Code []byte
}

// Language returns the first word of the info string.
func (f Fence) Language() string {
	lang, _, _ := bytes.Cut(bytes.TrimSpace([]byte(f.Info)), []byte(" "))
	return string(lang)
}

// HasLanguage reports whether the fence names a language.
func (f Fence) HasLanguage() bool {
	return f.Language() != ""
}

// Parser finds fenced code blocks using goldmark.
type Parser struct {
	md goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	return &Parser{md: newGoldmarkInstance(flavorOrDefault(flavor))}
}

// Fences parses content and returns its fenced code blocks in document order.
func (p *Parser) Fences(ctx context.Context, content []byte) ([]Fence, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	reader := text.NewReader(content)
	doc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	var fences []Fence
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		fences = append(fences, buildFence(content, block))
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return fences, nil
}

// buildFence locates the opening fence line of block in content.
func buildFence(content []byte, block *ast.FencedCodeBlock) Fence {
	fence := Fence{Opener: -1, OpenerEnd: -1}

	var code bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		code.Write(seg.Value(content))
	}
	fence.Code = code.Bytes()

	switch {
	case block.Info != nil:
		fence.Info = string(block.Info.Value(content))
		fence.Opener = lineStart(content, block.Info.Segment.Start)
	case lines.Len() > 0:
		first := lineStart(content, lines.At(0).Start)
		if first > 0 {
			fence.Opener = lineStart(content, first-1)
		}
	}

	if fence.Opener >= 0 {
		fence.OpenerEnd = lineEnd(content, fence.Opener)
		fence.Marker = markerAt(content[fence.Opener:fence.OpenerEnd])
	}

	return fence
}

// lineStart returns the offset of the start of the line containing pos.
func lineStart(content []byte, pos int) int {
	pos = min(pos, len(content))
	for pos > 0 && content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset of the end of the line starting at pos,
// excluding any line terminator.
func lineEnd(content []byte, pos int) int {
	end := len(content)
	if i := bytes.IndexByte(content[pos:], '\n'); i >= 0 {
		end = pos + i
	}
	if end > pos && content[end-1] == '\r' {
		end--
	}
	return end
}

// markerAt returns the run of backticks or tildes that opens line.
func markerAt(line []byte) string {
	trimmed := bytes.TrimLeft(line, " ")
	if len(trimmed) == 0 || (trimmed[0] != '`' && trimmed[0] != '~') {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == trimmed[0] {
		n++
	}
	return string(trimmed[:n])
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
	}

	return goldmark.New(opts...)
}
