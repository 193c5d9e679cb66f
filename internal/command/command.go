// Package command builds the shell text that drives the database client.
package command

import (
	"fmt"

	"github.com/eduardofuncao/pgx/internal/env"
	"github.com/eduardofuncao/pgx/internal/params"
)

// HeredocSentinel terminates the inline script. It is a fixed delimiter and
// is never derived from user input.
const HeredocSentinel = "EOF"

// JSONAlias names the subquery the rows are aggregated from.
const JSONAlias = "sql_to_json_val"

// Connection returns the bare client invocation for creds.
func Connection(client string, creds env.Credentials) string {
	return fmt.Sprintf("%s -h %s -U %s -d %s", client, creds.Host, creds.User, creds.Database)
}

// WrapJSON turns sql into a query returning all of its rows as a single
// JSON array of objects.
func WrapJSON(sql string) string {
	return fmt.Sprintf(
		"SELECT array_to_json(array_agg(row_to_json(%s))) FROM (%s) AS %s",
		JSONAlias, sql, JSONAlias,
	)
}

// Heredoc feeds body to conn in tuples-only mode.
func Heredoc(conn, body string) string {
	return fmt.Sprintf("%s -t << %s\n%s\n%s", conn, HeredocSentinel, body, HeredocSentinel)
}

// Query is a formatted execution.
type Query struct {
	// SQL has the positional values substituted, before JSON wrapping.
	SQL string
	// Body is what the client actually runs.
	Body string
	// Command is the full shell text.
	Command string
}

// Format substitutes values into sql, wraps it unless noJSON is set and
// embeds it in a heredoc for conn.
func Format(conn, sql string, values []string, noJSON bool) Query {
	replaced := params.Substitute(values, sql)

	body := replaced
	if !noJSON {
		body = WrapJSON(replaced)
	}

	return Query{
		SQL:     replaced,
		Body:    body,
		Command: Heredoc(conn, body),
	}
}
