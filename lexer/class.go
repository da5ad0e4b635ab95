package lexer

/*
Character classes

The tokenizer never looks at raw bytes directly. Every byte is first mapped to
a character class through a fixed 128-entry table; bytes outside ASCII (the
lead and continuation bytes of multi-byte UTF-8 sequences) are always text.

Classes that always produce a one-byte token of a fixed kind are resolved
through singleKind, so adding a new punctuation token only touches the two
tables below. Classes that need lookahead (spaces, colons, digits, carriage
returns) are handled by dedicated scanners in lexer.go.
*/

type class int8

const (
	cText class = iota
	cSpace
	cTab
	cNewline
	cCarriage
	cColon
	cDigit
	cDash
	cPeriod
	cOpenParen
	cCloseParen
	cComma
	cQuote
	cEquals
	cBang
	cQuestion
	cSemicolon
	numClasses
)

var asciiClass = [128]class{
	' ':  cSpace,
	'\t': cTab,
	'\n': cNewline,
	'\r': cCarriage,
	':':  cColon,
	'0':  cDigit, '1': cDigit, '2': cDigit, '3': cDigit, '4': cDigit,
	'5': cDigit, '6': cDigit, '7': cDigit, '8': cDigit, '9': cDigit,
	'-': cDash,
	'.': cPeriod,
	'(': cOpenParen,
	')': cCloseParen,
	',': cComma,
	'"': cQuote,
	'=': cEquals,
	'!': cBang,
	'?': cQuestion,
	';': cSemicolon,
}

// singleKind maps classes that always yield a single-byte token. A value
// of -1 means the class needs a dedicated scanner.
var singleKind = [numClasses]TokenKind{
	cText:       -1,
	cSpace:      -1,
	cTab:        Indentation,
	cNewline:    BlankLine,
	cCarriage:   -1,
	cColon:      -1,
	cDigit:      -1,
	cDash:       Dash,
	cPeriod:     Period,
	cOpenParen:  OpenParen,
	cCloseParen: CloseParen,
	cComma:      Comma,
	cQuote:      Quote,
	cEquals:     Equals,
	cBang:       ExclamationMark,
	cQuestion:   QuestionMark,
	cSemicolon:  Semicolon,
}

func classOf(b byte) class {
	if b >= 0x80 {
		return cText
	}
	return asciiClass[b]
}
