package run

import "strings"

// IsSelectQuery detects if the SQL returns rows and can therefore be
// aggregated into JSON.
func IsSelectQuery(sql string) bool {
	upper := strings.ToUpper(strings.TrimSpace(stripLeadingComments(sql)))
	keywords := []string{"SELECT", "WITH", "VALUES", "TABLE", "(SELECT"}

	for _, kw := range keywords {
		if upper == kw || strings.HasPrefix(upper, kw+" ") || strings.HasPrefix(upper, kw+"\n") {
			return true
		}
	}
	return false
}

func stripLeadingComments(sql string) string {
	for {
		sql = strings.TrimSpace(sql)
		if !strings.HasPrefix(sql, "--") {
			return sql
		}
		nl := strings.Index(sql, "\n")
		if nl == -1 {
			return ""
		}
		sql = sql[nl+1:]
	}
}
