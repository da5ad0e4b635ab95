package formatter

// ParseErrorFormatter shows the line the parser stopped on with a caret
// under the failing column.
type ParseErrorFormatter struct{}

func (f *ParseErrorFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .StartLine .MaxLineNumWidth "" .Padding -}}
{{caret .Message .Padding .StartLine .StartColumn .SnippetLines "" -}}
{{note .Note .Padding}}
`
}
