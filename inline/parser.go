package inline

import (
	"strings"
	"unicode"
)

// PostProcessor rewrites a node right after it is closed.
type PostProcessor func(Node) Node

// spec declares one delimited element. Literal elements keep their content
// as raw text and do not open nested elements.
type spec struct {
	kind    Kind
	start   rune
	end     rune
	literal bool
	post    PostProcessor
}

func defaultSpecs() []spec {
	return []spec{
		{kind: KindStrong, start: '*', end: '*'},
		{kind: KindEmphasis, start: '_', end: '_'},
		{kind: KindCode, start: '`', end: '`', literal: true},
		{kind: KindMath, start: '#', end: '#', literal: true},
		{kind: KindReference, start: '[', end: ']', literal: true, post: classifyNode},
	}
}

// Parser finds inline elements in a single text leaf.
type Parser struct {
	specs []spec
	index map[rune]int
}

// Option configures a Parser.
type Option func(*Parser)

// WithPostProcessor replaces the post processor for kind.
func WithPostProcessor(kind Kind, fn PostProcessor) Option {
	return func(p *Parser) {
		for i := range p.specs {
			if p.specs[i].kind == kind {
				p.specs[i].post = fn
			}
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{specs: defaultSpecs(), index: make(map[rune]int)}
	for _, opt := range opts {
		opt(p)
	}
	for i, s := range p.specs {
		p.index[s.start] = i
	}
	return p
}

var defaultParser = NewParser()

// Parse splits text into inline nodes with the default element set.
func Parse(text string) []Node {
	return defaultParser.Parse(text)
}

// Parse scans text once, left to right, keeping a stack of open elements.
//
//   - A backslash escapes the next non-alphanumeric rune. Before an
//     alphanumeric rune it is kept as is.
//   - A start delimiter opens an element only when it is not preceded by a
//     word rune and is followed by one (references only need a follower).
//   - An end delimiter closes the innermost element when it is not followed
//     by a word rune. Empty pairs such as "**" are kept as text.
//   - A start delimiter for an element that is already open is literal text,
//     and so is the next matching end delimiter.
//   - Elements still open at the end of the text are unwound into text.
func (p *Parser) Parse(text string) []Node {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	stack := []*frame{{spec: -1}}
	blocked := make([]int, len(p.specs))
	top := func() *frame { return stack[len(stack)-1] }

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		prev, hasPrev := runeAt(runes, i-1)
		next, hasNext := runeAt(runes, i+1)

		if ch == '\\' {
			if !hasNext {
				top().buf.WriteRune('\\')
				break
			}
			if isAlnum(next) {
				top().buf.WriteRune('\\')
				continue
			}
			top().buf.WriteRune(next)
			i++
			continue
		}

		consumed := false
		if cur := top(); cur.spec >= 0 {
			s := p.specs[cur.spec]
			if ch == s.end {
				switch {
				case blocked[cur.spec] > 0:
					blocked[cur.spec]--
				case validEnd(prev, hasPrev, next, hasNext, s):
					stack = stack[:len(stack)-1]
					cur.flush()
					parent := top()
					if cur.empty() {
						parent.buf.WriteRune(s.start)
						parent.buf.WriteRune(s.end)
					} else {
						node := cur.node(s)
						if s.post != nil {
							node = s.post(node)
						}
						parent.push(node)
					}
					consumed = true
				}
			}
		}

		if !consumed && !p.literal(top()) {
			if idx, ok := p.index[ch]; ok {
				s := p.specs[idx]
				if validStart(prev, hasPrev, next, hasNext, s) {
					if p.open(stack, idx) {
						blocked[idx]++
					} else {
						top().flush()
						stack = append(stack, &frame{spec: idx})
						consumed = true
					}
				}
			}
		}

		if !consumed {
			top().buf.WriteRune(ch)
		}
	}

	top().flush()
	for len(stack) > 1 {
		cur := top()
		stack = stack[:len(stack)-1]
		cur.flush()
		parent := top()
		parent.buf.WriteRune(p.specs[cur.spec].start)
		for _, child := range cur.children {
			parent.push(child)
		}
	}

	root := stack[0]
	root.flush()
	return root.children
}

func (p *Parser) literal(f *frame) bool {
	return f.spec >= 0 && p.specs[f.spec].literal
}

func (p *Parser) open(stack []*frame, idx int) bool {
	for _, f := range stack {
		if f.spec == idx {
			return true
		}
	}
	return false
}

type frame struct {
	spec     int
	buf      strings.Builder
	children []Node
}

func (f *frame) empty() bool {
	return f.buf.Len() == 0 && len(f.children) == 0
}

func (f *frame) flush() {
	if f.buf.Len() == 0 {
		return
	}
	text := f.buf.String()
	f.buf.Reset()
	f.appendPlain(text)
}

func (f *frame) push(n Node) {
	f.flush()
	if plain, ok := n.(*Plain); ok {
		if plain.Text != "" {
			f.appendPlain(plain.Text)
		}
		return
	}
	f.children = append(f.children, n)
}

func (f *frame) appendPlain(text string) {
	if len(f.children) > 0 {
		if last, ok := f.children[len(f.children)-1].(*Plain); ok {
			last.Text += text
			return
		}
	}
	f.children = append(f.children, &Plain{Text: text})
}

func (f *frame) node(s spec) Node {
	switch s.kind {
	case KindStrong:
		return &Strong{Content: f.children}
	case KindEmphasis:
		return &Emphasis{Content: f.children}
	case KindCode:
		return &Code{Text: flattenLiteral(f.children)}
	case KindMath:
		return &Math{Text: flattenLiteral(f.children)}
	case KindReference:
		return &Reference{Raw: flattenLiteral(f.children), Type: RefNotSure}
	}
	panic("inline: unknown element kind " + s.kind.String())
}

// flattenLiteral joins the text of a literal frame. Literal frames never
// open children, so anything but Plain is a parser defect.
func flattenLiteral(children []Node) string {
	var sb strings.Builder
	for _, c := range children {
		plain, ok := c.(*Plain)
		if !ok {
			panic("inline: literal element holds a nested " + c.Kind().String())
		}
		sb.WriteString(plain.Text)
	}
	return sb.String()
}

func validStart(prev rune, hasPrev bool, next rune, hasNext bool, s spec) bool {
	if s.kind == KindReference {
		return !isWord(prev, hasPrev) && hasNext
	}
	return !isWord(prev, hasPrev) && isWord(next, hasNext)
}

func validEnd(prev rune, hasPrev bool, next rune, hasNext bool, s spec) bool {
	inside := hasPrev
	if !s.literal {
		inside = hasPrev && !unicode.IsSpace(prev)
	}
	return inside && !isWord(next, hasNext)
}

func runeAt(runes []rune, i int) (rune, bool) {
	if i < 0 || i >= len(runes) {
		return 0, false
	}
	return runes[i], true
}

func isWord(r rune, ok bool) bool { return ok && isAlnum(r) }

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }
