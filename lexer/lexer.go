package lexer

// indentWidth is the number of spaces forming one indentation unit.
const indentWidth = 4

// Lexer scans Lex source into a flat, gap-free token stream.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0, len(input)/3+1),
	}
}

// Tokenize is a shorthand for NewLexer(input).Tokenize().
func Tokenize(input string) []Token {
	return NewLexer(input).Tokenize()
}

// Tokenize processes the whole input. It never fails: bytes that fit no
// other kind become Text, and consecutive token spans always abut.
func (l *Lexer) Tokenize() []Token {
	for l.position < len(l.input) {
		start := l.position
		c := classOf(l.input[start])

		if kind := singleKind[c]; kind >= 0 {
			l.emit(kind, start, start+1)
			continue
		}

		switch c {
		case cSpace:
			l.lexSpaces()
		case cColon:
			if l.peek(1) == ':' {
				l.emit(LexMarker, start, start+2)
			} else {
				l.emit(Colon, start, start+1)
			}
		case cDigit:
			end := start
			for end < len(l.input) && classOf(l.input[end]) == cDigit {
				end++
			}
			l.emit(Number, start, end)
		case cCarriage:
			if l.peek(1) == '\n' {
				l.emit(BlankLine, start, start+2)
			} else {
				l.emit(Text, start, start+1)
			}
		default:
			l.lexText()
		}
	}
	return l.tokens
}

// lexSpaces splits a run of spaces into as many full indentation units as
// fit, followed by at most one Whitespace token for the remainder.
func (l *Lexer) lexSpaces() {
	start := l.position
	end := start
	for end < len(l.input) && l.input[end] == ' ' {
		end++
	}
	for start+indentWidth <= end {
		l.emit(Indentation, start, start+indentWidth)
		start += indentWidth
	}
	if start < end {
		l.emit(Whitespace, start, end)
	}
}

// lexText consumes bytes of class cText. A lone carriage return is folded
// into the surrounding text.
func (l *Lexer) lexText() {
	start := l.position
	end := start
	for end < len(l.input) {
		c := classOf(l.input[end])
		if c == cCarriage && end+1 < len(l.input) && l.input[end+1] == '\n' {
			break
		}
		if c != cText && c != cCarriage {
			break
		}
		end++
	}
	l.emit(Text, start, end)
}

func (l *Lexer) peek(offset int) byte {
	if l.position+offset < len(l.input) {
		return l.input[l.position+offset]
	}
	return 0
}

func (l *Lexer) emit(kind TokenKind, start, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Span: Span{Start: start, End: end}})
	l.position = end
}
