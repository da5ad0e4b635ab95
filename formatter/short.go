package formatter

import (
	"strings"

	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// GenerateShortIssue renders one line per issue in the
// file:line:column form editors and grep understand.
func GenerateShortIssue(issues []tt.Issue) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(fileStyle.Sprintf("%s:%d:%d", issue.Filename, issue.Start.Line, issue.Start.Column))
		builder.WriteString(": ")
		builder.WriteString(severityLabel(issue.Severity))
		builder.WriteString(issue.Message)
		builder.WriteString(ruleStyle.Sprintf(" [%s]", issue.Rule))
		builder.WriteString("\n")
	}
	return builder.String()
}

func severityLabel(s tt.Severity) string {
	switch s {
	case tt.SeverityError:
		return errorStyle.Sprint("error: ")
	case tt.SeverityWarning:
		return warningStyle.Sprint("warning: ")
	case tt.SeverityInfo:
		return infoStyle.Sprint("info: ")
	default:
		return ""
	}
}
