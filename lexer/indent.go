package lexer

// Normalize rewrites a raw token stream into its semantic form:
//
//   - a zero-width Indent is inserted for every indentation level a content
//     line opens, and a zero-width Dedent for every level it closes;
//   - blank lines never change the level;
//   - a Whitespace remainder sitting between a line's indentation units and
//     its first Text token is removed;
//   - Dedents closing every open level are appended at the end.
//
// Indentation tokens themselves are kept, so later stages can still measure
// absolute depth (verbatim content relies on this).
func Normalize(tokens []Token) []Token {
	n := &normalizer{out: make([]Token, 0, len(tokens)+8)}
	for start := 0; start < len(tokens); {
		end := lineEnd(tokens, start)
		n.line(tokens[start:end])
		start = end
	}
	n.closeAll(endOffset(tokens))
	return n.out
}

type normalizer struct {
	out    []Token
	levels []int
}

func (n *normalizer) current() int {
	if len(n.levels) == 0 {
		return 0
	}
	return n.levels[len(n.levels)-1]
}

func (n *normalizer) line(line []Token) {
	if isBlankLine(line) {
		n.out = append(n.out, line...)
		return
	}

	depth := leadingIndentation(line)
	at := line[0].Span.Start
	for n.current() < depth {
		n.levels = append(n.levels, n.current()+1)
		n.out = append(n.out, Token{Kind: Indent, Span: Span{Start: at, End: at}})
	}
	for n.current() > depth {
		n.levels = n.levels[:len(n.levels)-1]
		n.out = append(n.out, Token{Kind: Dedent, Span: Span{Start: at, End: at}})
	}

	for i, tok := range line {
		if isRemainder(line, i, depth) {
			continue
		}
		n.out = append(n.out, tok)
	}
}

func (n *normalizer) closeAll(at int) {
	for len(n.levels) > 0 {
		n.levels = n.levels[:len(n.levels)-1]
		n.out = append(n.out, Token{Kind: Dedent, Span: Span{Start: at, End: at}})
	}
}

// isRemainder reports whether line[i] is a whitespace remainder: directly
// after the leading indentation units and directly before Text.
func isRemainder(line []Token, i, depth int) bool {
	return depth > 0 &&
		i == depth &&
		line[i].Kind == Whitespace &&
		i+1 < len(line) &&
		line[i+1].Kind == Text
}

// lineEnd returns the index just past the BlankLine token closing the line
// that starts at start, or len(tokens) for an unterminated last line.
func lineEnd(tokens []Token, start int) int {
	for i := start; i < len(tokens); i++ {
		if tokens[i].Kind == BlankLine {
			return i + 1
		}
	}
	return len(tokens)
}

func leadingIndentation(line []Token) int {
	depth := 0
	for depth < len(line) && line[depth].Kind == Indentation {
		depth++
	}
	return depth
}

func isBlankLine(line []Token) bool {
	for _, tok := range line {
		if tok.Kind != BlankLine && !tok.Kind.IsSpace() {
			return false
		}
	}
	return true
}

func endOffset(tokens []Token) int {
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].Span.End
}
