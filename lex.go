// Package lex parses Lex documents.
//
// Parse runs the whole pipeline over an in-memory source:
//
//	tokenize -> normalize indentation -> classify and nest lines
//	         -> match grammar -> build AST -> attach annotations
//
// The result is an *ast.Document whose nodes all carry byte-accurate
// ranges. Inline spans of text are parsed lazily, on first use of
// ast.TextContent.Inlines.
//
// Parsing is a pure function of its input and is safe to call from many
// goroutines at once.
package lex

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/attach"
	"github.com/lex-fmt/core-sub004/internal/builder"
	"github.com/lex-fmt/core-sub004/internal/grammar"
	"github.com/lex-fmt/core-sub004/internal/lines"
	"github.com/lex-fmt/core-sub004/lexer"
)

// Options tunes a parse.
type Options struct {
	// Logger receives one debug record per stage. Nil disables logging.
	Logger *zap.Logger
	// SkipAttachment leaves annotations where they were written instead of
	// moving them onto the nodes they describe.
	SkipAttachment bool
}

// Parse parses source with default options.
func Parse(source string) (*ast.Document, error) {
	return ParseWithOptions(source, Options{})
}

// ParseWithOptions parses source. A missing final newline is supplied.
//
// The only error it returns for bad input wraps an *ast.ParseError.
func ParseWithOptions(source string, opts Options) (*ast.Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	source = terminate(source)

	raw := lexer.Tokenize(source)
	logger.Debug("tokenized", zap.Int("tokens", len(raw)), zap.Int("bytes", len(source)))

	tokens := lexer.Normalize(raw)
	logger.Debug("normalized", zap.Int("tokens", len(tokens)))

	tree := lines.Build(source, tokens)
	logger.Debug("classified", zap.Int("lines", len(tree.Lines())))

	ir := grammar.Parse(tree)
	logger.Debug("matched", zap.Int("top_level_nodes", len(ir.Children)))

	doc, err := builder.Build(source, ir)
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}
	logger.Debug("built", zap.Int("top_level_elements", len(doc.Children())))

	if !opts.SkipAttachment {
		attach.Attach(doc)
		logger.Debug("attached", zap.Int("document_annotations", len(doc.Annotations)))
	}
	return doc, nil
}

// Tokenize returns the raw token stream of source, after supplying a
// missing final newline the same way Parse does.
func Tokenize(source string) []lexer.Token {
	return lexer.Tokenize(terminate(source))
}

func terminate(source string) string {
	if source == "" || strings.HasSuffix(source, "\n") {
		return source
	}
	return source + "\n"
}
