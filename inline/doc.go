// Package inline parses the inline elements of a single line of Lex text:
// *strong*, _emphasis_, `code`, #math# and [references].
//
// References are classified by their content, in order: TK placeholders,
// @citations, ^labeled footnotes, #session references, URLs, file paths,
// numeric footnotes, then general targets.
package inline
