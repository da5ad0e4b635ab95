package internal

import (
	"go/token"
	"os"
	"strings"

	"github.com/lex-fmt/core-sub004/ast"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// SourceCode stores the content of a source file, one string per line.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads filename for snippet rendering.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

func NewSourceCode(text string) *SourceCode {
	return &SourceCode{Lines: strings.Split(text, "\n")}
}

// Source is one file as the rules see it. Doc is nil when parsing failed,
// in which case Err holds the failure.
type Source struct {
	Filename string
	Text     string
	Doc      *ast.Document
	Err      error
	// Attached is false when the attachment pass was skipped.
	Attached bool

	smap *ast.SourceMap
}

func newSource(filename, text string) *Source {
	return &Source{Filename: filename, Text: text, smap: ast.NewSourceMap(text)}
}

// position converts a byte offset into a one-based token.Position.
func (s *Source) position(offset int) token.Position {
	p := s.smap.Position(offset)
	return token.Position{
		Filename: s.Filename,
		Offset:   offset,
		Line:     p.Line + 1,
		Column:   p.Column + 1,
	}
}

func (s *Source) issue(r LintRule, category string, rng ast.Range, message string) tt.Issue {
	return tt.Issue{
		Rule:     r.Name(),
		Category: category,
		Filename: s.Filename,
		Message:  message,
		Severity: r.Severity(),
		Start:    s.position(rng.Span.Start),
		End:      s.position(rng.Span.End),
	}
}
