package inline

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// PageFormat is the page prefix of a citation locator.
type PageFormat int

const (
	PageP  PageFormat = iota // p.
	PagePP                   // pp.
)

func (f PageFormat) String() string {
	if f == PagePP {
		return "pp"
	}
	return "p"
}

// PageRange is a page or a span of pages. End is zero for a single page and
// for open ranges such as "45-".
type PageRange struct {
	Start int
	End   int
}

// Locator is the page part of a citation.
type Locator struct {
	Format PageFormat
	Ranges []PageRange
	// Raw is the locator as written, e.g. "pp. 45-46".
	Raw string
}

// Citation is the parsed content of [@key1; @key2, pp. 45-46].
type Citation struct {
	Keys    []string
	Locator *Locator
}

// citationKeyList accepts keys separated by commas or semicolons, each
// with an optional leading "@".
//
//nolint:govet // participle grammar tags are not standard struct tags
type citationKeyList struct {
	Keys []string `( "@" | Sep | @Key )*`
}

var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "At", Pattern: `@`},
	{Name: "Sep", Pattern: `[,;]`},
	{Name: "Key", Pattern: `[^,;@]+`},
})

var keyParser = participle.MustBuild[citationKeyList](
	participle.Lexer(keyLexer),
)

// locatorGrammar is a page locator: "p.45", "pp. 45-46, 50", "p 3-".
//
//nolint:govet // participle grammar tags are not standard struct tags
type locatorGrammar struct {
	Prefix string       `@Ident "."?`
	Ranges []*pageGroup `@@ ( "," @@ )*`
}

// pageGroup captures "45", "45-" or "45-46" token by token.
//
//nolint:govet // participle grammar tags are not standard struct tags
type pageGroup struct {
	Parts []string `@Int ( @"-" @Int? )?`
}

var locatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[.,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var locatorParser = participle.MustBuild[locatorGrammar](
	participle.Lexer(locatorLexer),
	participle.Elide("Whitespace"),
)

// ParseCitation parses the content of a citation after its leading "@".
// ok is false when no key remains.
func ParseCitation(content string) (*Citation, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false
	}

	keysPart, locatorPart := splitLocator(content)
	keys := parseKeys(keysPart)
	if len(keys) == 0 {
		return nil, false
	}

	c := &Citation{Keys: keys}
	if locatorPart != "" {
		c.Locator = parseLocator(locatorPart)
	}
	return c, true
}

// splitLocator cuts content at the last comma that starts a page locator.
func splitLocator(content string) (keys, locator string) {
	cut := -1
	for i := 0; i < len(content); i++ {
		if content[i] == ',' && looksLikeLocator(strings.TrimLeft(content[i+1:], " \t")) {
			cut = i
		}
	}
	if cut < 0 {
		return content, ""
	}
	return strings.TrimRight(content[:cut], " \t"), strings.TrimLeft(content[cut+1:], " \t")
}

func looksLikeLocator(s string) bool {
	lower := strings.ToLower(s)
	var rest string
	switch {
	case strings.HasPrefix(lower, "pp"):
		rest = lower[2:]
	case strings.HasPrefix(lower, "p"):
		rest = lower[1:]
	default:
		return false
	}
	if rest == "" {
		return false
	}
	c := rest[0]
	return c == '.' || c == ' ' || c == '\t' || (c >= '0' && c <= '9')
}

func parseKeys(segment string) []string {
	parsed, err := keyParser.ParseString("", segment)
	if err != nil {
		return nil
	}
	var keys []string
	for _, k := range parsed.Keys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func parseLocator(text string) *Locator {
	raw := strings.TrimSpace(text)
	parsed, err := locatorParser.ParseString("", raw)
	if err != nil {
		return nil
	}

	loc := &Locator{Raw: raw}
	switch strings.ToLower(parsed.Prefix) {
	case "p":
		loc.Format = PageP
	case "pp":
		loc.Format = PagePP
	default:
		return nil
	}
	for _, g := range parsed.Ranges {
		var r PageRange
		r.Start, err = strconv.Atoi(g.Parts[0])
		if err != nil {
			return nil
		}
		if len(g.Parts) == 3 {
			if r.End, err = strconv.Atoi(g.Parts[2]); err != nil {
				return nil
			}
		}
		loc.Ranges = append(loc.Ranges, r)
	}
	return loc
}
