package inline

import (
	"fmt"
	"strconv"
	"strings"
)

// ReferenceType classifies the target of a [bracketed] reference.
type ReferenceType int

const (
	// RefNotSure marks empty or punctuation-only content.
	RefNotSure ReferenceType = iota
	// RefToCome is a TK placeholder: [TK] or [TK-identifier].
	RefToCome
	// RefCitation is [@key; @key2, pp. 4-5].
	RefCitation
	// RefFootnoteLabeled is [^label].
	RefFootnoteLabeled
	// RefFootnoteNumber is [12].
	RefFootnoteNumber
	// RefSession is [#2.1].
	RefSession
	// RefURL is [https://...], [http://...] or [mailto:...].
	RefURL
	// RefFile is [./path] or [/path].
	RefFile
	// RefGeneral is any other named target.
	RefGeneral
)

var referenceTypeNames = [...]string{
	RefNotSure:         "not-sure",
	RefToCome:          "to-come",
	RefCitation:        "citation",
	RefFootnoteLabeled: "footnote-labeled",
	RefFootnoteNumber:  "footnote-number",
	RefSession:         "session",
	RefURL:             "url",
	RefFile:            "file",
	RefGeneral:         "general",
}

func (t ReferenceType) String() string {
	if t >= 0 && int(t) < len(referenceTypeNames) {
		return referenceTypeNames[t]
	}
	return fmt.Sprintf("ReferenceType(%d)", int(t))
}

// Reference is a [bracketed] reference. Raw is the literal content between
// the brackets; the remaining fields are filled according to Type.
type Reference struct {
	Raw  string
	Type ReferenceType

	// Identifier is the optional name of a TK placeholder.
	Identifier string
	// Label is the footnote label without its caret.
	Label string
	// Number is the numeric footnote.
	Number int
	// Target is the session, URL, file, or general target.
	Target string
	// Citation is set for RefCitation.
	Citation *Citation
}

func (r *Reference) Kind() Kind { return KindReference }

func (r *Reference) String() string {
	return fmt.Sprintf("Reference(%s %q)", r.Type, r.Raw)
}

// classifyNode is the post processor of reference elements.
func classifyNode(n Node) Node {
	ref, ok := n.(*Reference)
	if !ok {
		return n
	}
	classified := Classify(ref.Raw)
	return &classified
}

const maxPlaceholderID = 20

// Classify determines the reference type of raw bracket content. The first
// matching check wins.
func Classify(raw string) Reference {
	ref := Reference{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" || !strings.ContainsFunc(s, isAlnum) {
		return ref
	}

	if id, ok := placeholder(s); ok {
		ref.Type, ref.Identifier = RefToCome, id
		return ref
	}

	if rest, ok := strings.CutPrefix(s, "@"); ok {
		if c, ok := ParseCitation(rest); ok {
			ref.Type, ref.Citation = RefCitation, c
			return ref
		}
	}

	if rest, ok := strings.CutPrefix(s, "^"); ok && rest != "" {
		ref.Type, ref.Label = RefFootnoteLabeled, rest
		return ref
	}

	if target, ok := sessionTarget(s); ok {
		ref.Type, ref.Target = RefSession, target
		return ref
	}

	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "mailto:"):
		ref.Type, ref.Target = RefURL, s
		return ref
	case strings.HasPrefix(s, "."), strings.HasPrefix(s, "/"):
		ref.Type, ref.Target = RefFile, s
		return ref
	}

	if n, ok := footnoteNumber(s); ok {
		ref.Type, ref.Number = RefFootnoteNumber, n
		return ref
	}

	ref.Type, ref.Target = RefGeneral, s
	return ref
}

func placeholder(s string) (string, bool) {
	if strings.EqualFold(s, "TK") {
		return "", true
	}
	if len(s) < 3 || !strings.EqualFold(s[:3], "TK-") {
		return "", false
	}
	id := s[3:]
	if id == "" || len(id) > maxPlaceholderID {
		return "", false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return "", false
		}
	}
	return id, true
}

func sessionTarget(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, "#")
	if !ok || rest == "" {
		return "", false
	}
	for _, r := range rest {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", false
		}
	}
	return rest, true
}

func footnoteNumber(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
