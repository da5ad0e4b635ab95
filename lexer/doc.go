/*
Package lexer turns Lex source text into tokens.

Tokenization happens in two passes.

1. Raw scan (Tokenize)

The raw scan is total: every byte of the input ends up in exactly one token,
token spans are contiguous, and nothing ever fails. Ambiguity is settled by
longest match with a fixed priority, for example:

	"::"      -> LexMarker        (before Colon)
	"    "    -> Indentation      (4 spaces, before Whitespace)
	"      "  -> Indentation, Whitespace
	"   \t  " -> Whitespace, Indentation, Whitespace
	"12."     -> Number, Period
	"\r\n"    -> BlankLine

2. Semantic indentation (Normalize)

Normalize walks the raw stream line by line and inserts zero-width Indent and
Dedent tokens whenever the count of leading Indentation tokens on a content
line differs from the current level. Blank lines never open or close levels,
so the Dedents that follow a blank run appear right before the next content
line. A 1-3 space Whitespace token squeezed between indentation and text is
dropped.

	Term:             Text Colon BlankLine
	    body          Indent Indentation Text BlankLine
	                  Dedent

Detokenize reverses either stream using the original source.
*/
package lexer
