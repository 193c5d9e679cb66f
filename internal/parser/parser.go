package parser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eduardofuncao/pgx/internal/styles"
)

// clauses start a new line when formatting, longest first
var clauses = []string{
	"FULL OUTER JOIN", "LEFT OUTER JOIN", "RIGHT OUTER JOIN",
	"LEFT JOIN", "RIGHT JOIN", "INNER JOIN", "FULL JOIN", "CROSS JOIN",
	"INSERT INTO", "DELETE FROM", "GROUP BY", "ORDER BY",
	"UNION ALL", "SELECT", "FROM", "WHERE", "HAVING",
	"LIMIT", "OFFSET", "UNION", "UPDATE", "VALUES", "SET", "RETURNING",
}

var keywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "FULL", "CROSS", "OUTER",
	"ON", "GROUP", "BY", "HAVING", "ORDER", "LIMIT", "OFFSET", "UNION", "ALL",
	"INSERT", "INTO", "UPDATE", "DELETE", "VALUES", "SET", "AND", "OR", "NOT",
	"IN", "EXISTS", "BETWEEN", "LIKE", "ILIKE", "IS", "NULL", "DISTINCT", "AS",
	"CASE", "WHEN", "THEN", "ELSE", "END", "WITH", "RETURNING",
}

var (
	clauseRegex  = alternation(clauses)
	keywordRegex = alternation(keywords)
	markerRegex  = regexp.MustCompile(`\$\d+`)
)

func alternation(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// FormatSQLWithLineBreaks puts every major clause on its own line and drops
// blank lines.
func FormatSQLWithLineBreaks(sql string) string {
	if strings.TrimSpace(sql) == "" {
		return ""
	}

	formatted := clauseRegex.ReplaceAllStringFunc(sql, func(match string) string {
		return "\n" + match
	})

	var lines []string
	for _, line := range strings.Split(formatted, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}

// HighlightSQL colors keywords, string literals and $N markers. Keywords
// inside literals are left alone.
func HighlightSQL(sql string) string {
	var b strings.Builder

	parts := strings.Split(sql, "'")
	for i, part := range parts {
		if i%2 == 1 {
			closing := "'"
			if i == len(parts)-1 {
				closing = ""
			}
			b.WriteString(styles.SQLString.Render("'" + part + closing))
			continue
		}
		part = keywordRegex.ReplaceAllStringFunc(part, render(styles.SQLKeyword))
		part = markerRegex.ReplaceAllStringFunc(part, render(styles.Marker))
		b.WriteString(part)
	}

	return b.String()
}
