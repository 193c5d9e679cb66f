package run

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/eduardofuncao/pgx/internal/command"
	"github.com/eduardofuncao/pgx/internal/env"
)

// NativeExecutor runs queries through lib/pq instead of a client process.
// Output mimics the client's tuples-only mode.
type NativeExecutor struct {
	Creds   env.Credentials
	SSLMode string
}

// DSN builds a key/value connection string for creds, so a socket
// directory works as host just like with psql. Empty settings are left out
// and, like password and port, are taken from the PG* environment by lib/pq.
func DSN(creds env.Credentials, sslMode string) string {
	settings := []struct{ key, value string }{
		{"host", creds.Host},
		{"user", creds.User},
		{"dbname", creds.Database},
		{"sslmode", sslMode},
	}

	var parts []string
	for _, s := range settings {
		if s.value != "" {
			parts = append(parts, s.key+"="+quoteDSNValue(s.value))
		}
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

func (e NativeExecutor) Execute(ctx context.Context, q command.Query) ([]byte, error) {
	connector, err := pq.NewConnector(DSN(e.Creds, e.SSLMode))
	if err != nil {
		return nil, fmt.Errorf("invalid connection settings: %w", err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	logrus.WithFields(logrus.Fields{
		"host":     e.Creds.Host,
		"database": e.Creds.Database,
	}).Debug("running query through lib/pq")

	rows, err := db.QueryContext(ctx, q.Body)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	records, err := scanAll(rows)
	if err != nil {
		return nil, fmt.Errorf("reading rows failed: %w", err)
	}

	var out strings.Builder
	writeTuples(&out, records)
	return []byte(out.String()), nil
}

func scanAll(rows *sql.Rows) ([][]sql.NullString, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records [][]sql.NullString
	for rows.Next() {
		record := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range record {
			dest[i] = &record[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// writeTuples prints one line per row with columns separated by " | ".
// NULL is printed as an empty field.
func writeTuples(w io.Writer, records [][]sql.NullString) {
	for _, record := range records {
		fields := make([]string, len(record))
		for i, v := range record {
			if v.Valid {
				fields[i] = v.String
			}
		}
		fmt.Fprintln(w, strings.Join(fields, " | "))
	}
}
