package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseError reports a syntax error in the analyzed source, with the
// 1-indexed line and 0-indexed column of the first offending token.
type ParseError struct {
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

// Parser builds SourceUnits from Python source text using tree-sitter
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with the Python grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// Parse parses Python source code and returns its structural model.
// Parsing is a pure transformation of the given text; a syntactically
// invalid unit yields a *ParseError and no model.
func (p *Parser) Parse(ctx context.Context, filePath string, source []byte) (*SourceUnit, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, firstSyntaxError(rootNode)
	}

	builder := newModelBuilder(filePath, source)
	return builder.build(rootNode), nil
}

// ParseReader parses Python source from a reader
func (p *Parser) ParseReader(ctx context.Context, filePath string, reader io.Reader) (*SourceUnit, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return p.Parse(ctx, filePath, source)
}

// firstSyntaxError locates the first ERROR or MISSING node in the tree
func firstSyntaxError(root *sitter.Node) *ParseError {
	var found *sitter.Node

	var walk func(node *sitter.Node) bool
	walk = func(node *sitter.Node) bool {
		if node.IsError() || node.IsMissing() {
			found = node
			return true
		}
		if !node.HasError() {
			return false
		}
		childCount := int(node.ChildCount())
		for i := 0; i < childCount; i++ {
			if walk(node.Child(i)) {
				return true
			}
		}
		return false
	}
	walk(root)

	if found == nil {
		// HasError was set without a local ERROR node; fall back to the
		// tree start so the caller still gets a location.
		found = root
	}

	point := found.StartPoint()
	return &ParseError{
		Line:   int(point.Row) + 1,
		Column: int(point.Column),
	}
}

// countLines returns the number of lines in the source text, matching
// what an editor would display (a trailing newline does not open a new line).
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte("\n"))
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}
