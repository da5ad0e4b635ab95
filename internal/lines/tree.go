package lines

import "github.com/lex-fmt/core-sub004/lexer"

// Build groups a normalized token stream into classified lines and nests
// them by its Indent and Dedent tokens. Indent opens a child container of
// the current one; Dedent closes it.
func Build(source string, tokens []lexer.Token) *Container {
	root := &Container{}
	stack := []*Container{root}
	var pending []lexer.Token

	emit := func() {
		if len(pending) == 0 {
			return
		}
		top := stack[len(stack)-1]
		top.Entries = append(top.Entries, Classify(source, pending))
		pending = nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.Indent:
			emit()
			child := &Container{}
			top := stack[len(stack)-1]
			top.Entries = append(top.Entries, child)
			stack = append(stack, child)
		case lexer.Dedent:
			emit()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		default:
			pending = append(pending, tok)
			if tok.Kind == lexer.BlankLine {
				emit()
			}
		}
	}
	emit()
	return root
}
