// Package suppress reads nolint annotations out of a parsed document.
//
//	:: nolint ::                        every rule
//	:: nolint rules="inline,list" ::    the named rules and namespaces
//
// A nolint annotation silences diagnostics over the element it attaches to.
// Attached to the document, it covers the whole file. Left unattached, it
// covers only its own lines.
package suppress

import (
	"math"
	"strings"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/trie"
)

const (
	Label      = "nolint"
	rulesParam = "rules"
)

// Manager answers whether a rule is silenced on a given line.
type Manager struct {
	scopes []scope
}

// scope is a range of zero-based lines. A nil rules trie means every rule.
type scope struct {
	rules      *trie.Trie
	start, end int
}

// Collect builds a Manager from the nolint annotations of doc.
func Collect(doc *ast.Document) *Manager {
	m := &Manager{}
	if doc == nil {
		return m
	}

	attached := make(map[*ast.Annotation]bool)
	ast.Inspect(doc, func(n ast.Node) {
		owner, ok := n.(ast.Annotatable)
		if !ok {
			return
		}
		for _, a := range owner.AttachedAnnotations() {
			attached[a] = true
			if a.Label.Value != Label {
				continue
			}
			start, end := n.Range().Start.Line, n.Range().End.Line
			if _, isDoc := n.(*ast.Document); isDoc {
				start, end = 0, math.MaxInt
			}
			m.add(a, start, end)
		}
	})

	ast.Inspect(doc, func(n ast.Node) {
		a, ok := n.(*ast.Annotation)
		if !ok || attached[a] || a.Label.Value != Label {
			return
		}
		m.add(a, a.Location.Start.Line, a.Location.End.Line)
	})
	return m
}

func (m *Manager) add(a *ast.Annotation, start, end int) {
	s := scope{start: start, end: end}
	if p, ok := a.Parameter(rulesParam); ok {
		names := parseRuleNames(p.Unquoted())
		if len(names) == 0 {
			// rules= with nothing in it names no rule
			return
		}
		s.rules = trie.New()
		for _, name := range names {
			s.rules.Add(name)
		}
	}
	m.scopes = append(m.scopes, s)
}

// Suppressed reports whether rule is silenced on the zero-based line.
func (m *Manager) Suppressed(rule string, line int) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if line < s.start || line > s.end {
			continue
		}
		if s.rules == nil || s.rules.Covers(rule) {
			return true
		}
	}
	return false
}

// Len returns the number of scopes collected.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.scopes)
}

func parseRuleNames(text string) []string {
	var names []string
	for _, rule := range strings.Split(text, ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			names = append(names, rule)
		}
	}
	return names
}
