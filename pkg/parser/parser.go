// Package parser turns JavaScript-family source files into ast.Trees using
// tree-sitter grammars.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/saintedlama/jsinspect/pkg/ast"
)

// Language represents a supported source language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangUnknown    Language = "unknown"
)

// ParseError describes a failed parse of one file. The run aborts on the
// first ParseError; there is no per-file recovery.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser wraps a tree-sitter parser. A Parser is not safe for concurrent
// use; create one per goroutine (see internal/fileproc).
type Parser struct {
	parser *sitter.Parser
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*ast.Tree, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return p.Parse(source, path)
}

// Parse parses source code, detecting the language from the path.
func (p *Parser) Parse(source []byte, path string) (*ast.Tree, error) {
	lang := DetectLanguage(path)
	tsLang, err := treeSitterLanguage(lang)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer tree.Close()

	return &ast.Tree{
		Path:  path,
		Root:  convert(tree.RootNode(), source, path),
		Lines: strings.Split(string(source), "\n"),
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".ts":
		return LangTypeScript
	case ".jsx", ".tsx":
		// The TSX grammar is a superset that handles JSX.
		return LangTSX
	default:
		return LangUnknown
	}
}

// treeSitterLanguage returns the tree-sitter grammar for a Language.
func treeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// identifierTypes are the grammar nodes whose source text is an identifier
// name. Only these nodes carry a Name in the converted tree.
var identifierTypes = map[string]bool{
	"identifier":                            true,
	"property_identifier":                   true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                  true,
	"type_identifier":                       true,
	"private_property_identifier":           true,
}

// convert maps a tree-sitter subtree onto the engine's node arena. Only
// named grammar nodes are kept; punctuation and other anonymous tokens do
// not contribute to structural shape.
func convert(tsNode *sitter.Node, source []byte, path string) *ast.Node {
	nodeType := tsNode.Type()
	node := &ast.Node{
		Type:      nodeType,
		File:      path,
		StartLine: tsNode.StartPoint().Row + 1,
		EndLine:   tsNode.EndPoint().Row + 1,
	}

	if identifierTypes[nodeType] {
		node.Name = nodeText(tsNode, source)
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		node.AddChild(convert(tsNode.NamedChild(i), source, path))
	}

	return node
}

// nodeText extracts the source text for a node, guarding byte offsets.
func nodeText(tsNode *sitter.Node, source []byte) string {
	start := tsNode.StartByte()
	end := tsNode.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
