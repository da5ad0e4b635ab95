package internal

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/inline"
	"github.com/lex-fmt/core-sub004/internal/lines"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// Rule names.
const (
	ParseErrorRule     = "parse-error"
	DetachedAnnotation = "annotation.detached"
	IndeterminateRef   = "inline.indeterminate-reference"
	PlaceholderRef     = "inline.placeholder"
	SingleItemList     = "list.single-item"
)

const (
	categoryStructure = "structure"
	categoryInline    = "inline"
	categorySyntax    = "syntax"
)

// LintRule checks one parsed source.
type LintRule interface {
	Check(src *Source) ([]tt.Issue, error)
	Name() string
	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity      { return r.severity }
func (r *baseRule) SetSeverity(s tt.Severity) { r.severity = s }

var (
	_ LintRule = (*ParseErrorCheck)(nil)
	_ LintRule = (*DetachedAnnotationCheck)(nil)
	_ LintRule = (*ReferenceCheck)(nil)
	_ LintRule = (*SingleItemListCheck)(nil)
)

// ParseErrorCheck reports the error that stopped the parse.
type ParseErrorCheck struct{ baseRule }

func NewParseErrorRule() LintRule {
	return &ParseErrorCheck{baseRule{severity: tt.SeverityError}}
}

func (r *ParseErrorCheck) Name() string { return ParseErrorRule }

func (r *ParseErrorCheck) Check(src *Source) ([]tt.Issue, error) {
	if src.Err == nil {
		return nil, nil
	}
	issue := tt.Issue{
		Rule:     r.Name(),
		Category: categorySyntax,
		Filename: src.Filename,
		Message:  src.Err.Error(),
		Severity: r.severity,
	}
	var perr *ast.ParseError
	if errors.As(src.Err, &perr) {
		issue.Message = perr.Message
		issue.Start = src.position(perr.Offset)
		issue.End = issue.Start
	} else {
		issue.Start = token.Position{Filename: src.Filename, Line: 1, Column: 1}
		issue.End = issue.Start
	}
	return []tt.Issue{issue}, nil
}

// DetachedAnnotationCheck reports annotations the attachment pass left in
// content position.
type DetachedAnnotationCheck struct{ baseRule }

func NewDetachedAnnotationRule() LintRule {
	return &DetachedAnnotationCheck{baseRule{severity: tt.SeverityWarning}}
}

func (r *DetachedAnnotationCheck) Name() string { return DetachedAnnotation }

func (r *DetachedAnnotationCheck) Check(src *Source) ([]tt.Issue, error) {
	if src.Doc == nil || !src.Attached {
		return nil, nil
	}
	var issues []tt.Issue
	ast.Inspect(src.Doc, func(n ast.Node) {
		for _, child := range ast.ChildrenOf(n) {
			a, ok := child.(*ast.Annotation)
			if !ok {
				continue
			}
			issues = append(issues, src.issue(r, categoryStructure, a.Location,
				fmt.Sprintf("annotation %q is not attached to any element", a.Label.Value)))
		}
	})
	return issues, nil
}

// ReferenceCheck reports references of one classification.
type ReferenceCheck struct {
	baseRule
	name    string
	kind    inline.ReferenceType
	message func(*inline.Reference) string
	note    string
}

func NewIndeterminateReferenceRule() LintRule {
	return &ReferenceCheck{
		baseRule: baseRule{severity: tt.SeverityWarning},
		name:     IndeterminateRef,
		kind:     inline.RefNotSure,
		message: func(ref *inline.Reference) string {
			return fmt.Sprintf("reference [%s] has no recognizable target", ref.Raw)
		},
		note: "a reference names a URL, a file, a session number, a footnote, or a citation",
	}
}

func NewPlaceholderRule() LintRule {
	return &ReferenceCheck{
		baseRule: baseRule{severity: tt.SeverityInfo},
		name:     PlaceholderRef,
		kind:     inline.RefToCome,
		message: func(ref *inline.Reference) string {
			if ref.Identifier != "" {
				return fmt.Sprintf("placeholder %q still to come", ref.Identifier)
			}
			return "placeholder still to come"
		},
		note: "TK marks content to be written later",
	}
}

func (r *ReferenceCheck) Name() string { return r.name }

func (r *ReferenceCheck) Check(src *Source) ([]tt.Issue, error) {
	if src.Doc == nil {
		return nil, nil
	}
	var issues []tt.Issue
	for _, text := range textContents(src.Doc) {
		rng, ok := text.Range()
		if !ok {
			continue
		}
		for _, ref := range inline.References(text.Inlines()) {
			if ref.Type != r.kind {
				continue
			}
			issue := src.issue(r, categoryInline, referenceRange(text, rng, ref), r.message(ref))
			issue.Note = r.note
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// referenceRange narrows rng to the bracketed reference when it can be
// found verbatim on a single-line text.
func referenceRange(text ast.TextContent, rng ast.Range, ref *inline.Reference) ast.Range {
	raw := text.String()
	if rng.Span.Len() != len(raw) {
		return rng
	}
	idx := strings.Index(raw, "["+ref.Raw+"]")
	if idx < 0 {
		return rng
	}
	start := rng.Span.Start + idx
	return ast.Range{Span: ast.Span{Start: start, End: start + len(ref.Raw) + 2}}
}

// SingleItemListCheck reports one-line paragraphs that open with a list
// marker: a list needs two items, so a lone item reads as prose.
type SingleItemListCheck struct{ baseRule }

func NewSingleItemListRule() LintRule {
	return &SingleItemListCheck{baseRule{severity: tt.SeverityInfo}}
}

func (r *SingleItemListCheck) Name() string { return SingleItemList }

func (r *SingleItemListCheck) Check(src *Source) ([]tt.Issue, error) {
	if src.Doc == nil {
		return nil, nil
	}
	var issues []tt.Issue
	ast.Inspect(src.Doc, func(n ast.Node) {
		p, ok := n.(*ast.Paragraph)
		if !ok || len(p.Lines) != 1 {
			return
		}
		if lines.StartsWithMarker(p.Lines[0].Content.String()) {
			issue := src.issue(r, categoryStructure, p.Location, "a single list item is read as a paragraph")
			issue.Suggestion = "add a second item or drop the marker"
			issues = append(issues, issue)
		}
	})
	return issues, nil
}

// textContents lists every piece of text that inlines are parsed from.
func textContents(doc *ast.Document) []ast.TextContent {
	var out []ast.TextContent
	ast.Inspect(doc, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.Session:
			out = append(out, n.Title)
		case *ast.Definition:
			out = append(out, n.Subject)
		case *ast.ListItem:
			out = append(out, n.Text)
		case *ast.TextLine:
			out = append(out, n.Content)
		}
	})
	return out
}
