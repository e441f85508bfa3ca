// Package treesitter provides a Parser implementation using tree-sitter's
// Python grammar.
//
// The parser locates the module, class and function definitions of a file
// and the string literal (if any) that opens each body. It does not evaluate
// the literal; docstring semantics live in the docstring package.
package treesitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// Node types of the tree-sitter Python grammar the parser inspects.
const (
	nodeClass       = "class_definition"
	nodeFunction    = "function_definition"
	nodeDecorated   = "decorated_definition"
	nodeExprStmt    = "expression_statement"
	nodeString      = "string"
	nodeComment     = "comment"
	fieldBody       = "body"
	fieldName       = "name"
	fieldDefinition = "definition"
)

// Parser implements lint.Parser using tree-sitter.
//
// A tree-sitter parser is not safe for concurrent use, so Parser keeps a pool
// of them. Parser itself is safe for concurrent use.
type Parser struct {
	pool sync.Pool
}

// New creates a new tree-sitter based Python parser.
func New() *Parser {
	return &Parser{
		pool: sync.Pool{
			New: func() any {
				p := sitter.NewParser()
				p.SetLanguage(python.GetLanguage())
				return p
			},
		},
	}
}

// Parse converts Python source into a pysrc.File with its definitions.
//
// Syntax errors do not fail the parse: tree-sitter recovers and the returned
// file has HasSyntaxErrors set. Definitions inside erroneous regions may be
// missing.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*pysrc.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	file := pysrc.NewFile(path, string(content))

	tsParser, _ := p.pool.Get().(*sitter.Parser)
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file.HasSyntaxErrors = root.HasError()

	collector := &collector{text: file.Text}
	module := &pysrc.Definition{
		Kind:      pysrc.KindModule,
		Range:     pysrc.NewTextRange(0, len(file.Text)),
		Docstring: collector.docstring(root),
	}
	collector.defs = append(collector.defs, module)
	collector.walk(root, module)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	file.Definitions = collector.defs
	return file, nil
}

// collector accumulates definitions in source order.
type collector struct {
	text string
	defs []*pysrc.Definition
}

// walk visits the children of node, recording every class and function
// definition with scope as its parent. Compound statements (if, try, with and
// so on) are descended into without changing the scope.
func (c *collector) walk(node *sitter.Node, scope *pysrc.Definition) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case nodeDecorated:
			if def := child.ChildByFieldName(fieldDefinition); def != nil {
				c.define(def, scope)
			}
		case nodeClass, nodeFunction:
			c.define(child, scope)
		default:
			c.walk(child, scope)
		}
	}
}

// define records a class or function definition and walks its body.
func (c *collector) define(node *sitter.Node, scope *pysrc.Definition) {
	nameNode := node.ChildByFieldName(fieldName)
	body := node.ChildByFieldName(fieldBody)
	if nameNode == nil || body == nil {
		return
	}

	def := &pysrc.Definition{
		Kind:      kindOf(node, scope),
		Name:      c.slice(nameNode),
		Range:     nodeRange(node),
		Docstring: c.docstring(body),
		Parent:    scope,
	}
	c.defs = append(c.defs, def)
	c.walk(body, def)
}

// kindOf classifies a definition node given its enclosing scope.
func kindOf(node *sitter.Node, scope *pysrc.Definition) pysrc.DefinitionKind {
	switch {
	case node.Type() == nodeClass:
		return pysrc.KindClass
	case scope != nil && scope.Kind == pysrc.KindClass:
		return pysrc.KindMethod
	default:
		return pysrc.KindFunction
	}
}

// docstring returns the literal that opens a module or block, or nil.
//
// Only a statement consisting of a single plain string literal qualifies.
// Implicitly concatenated strings, bytes and f-strings are not docstrings.
func (c *collector) docstring(body *sitter.Node) *pysrc.StringLiteral {
	first := firstStatement(body)
	if first == nil || first.Type() != nodeExprStmt || first.NamedChildCount() != 1 {
		return nil
	}

	expr := first.NamedChild(0)
	if expr.Type() != nodeString || expr.HasError() {
		return nil
	}

	lit, err := pysrc.NewStringLiteral(c.text, nodeRange(expr))
	if err != nil {
		return nil
	}
	return lit
}

// firstStatement returns the first named child of body that is not a comment.
func firstStatement(body *sitter.Node) *sitter.Node {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != nodeComment {
			return child
		}
	}
	return nil
}

func (c *collector) slice(node *sitter.Node) string {
	r := nodeRange(node)
	return c.text[r.Start:r.End]
}

func nodeRange(node *sitter.Node) pysrc.TextRange {
	return pysrc.NewTextRange(int(node.StartByte()), int(node.EndByte()))
}
