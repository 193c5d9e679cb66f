package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatSQLWithLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "empty",
			sql:  "   ",
			want: "",
		},
		{
			name: "simple select",
			sql:  "select id, name from users where id = $1 order by name",
			want: "select id, name\nfrom users\nwhere id = $1\norder by name",
		},
		{
			name: "join keeps compound keyword together",
			sql:  "SELECT * FROM a LEFT  JOIN b ON a.id = b.a_id",
			want: "SELECT *\nFROM a\nLEFT  JOIN b ON a.id = b.a_id",
		},
		{
			name: "identifiers containing keywords are untouched",
			sql:  "SELECT fromage FROM cheeses",
			want: "SELECT fromage\nFROM cheeses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatSQLWithLineBreaks(tt.sql))
		})
	}
}

func TestHighlightSQLKeepsText(t *testing.T) {
	// without a color profile the styles render the text unchanged
	for _, sql := range []string{
		"SELECT 'from' FROM t WHERE x = $1",
		"SELECT 'unterminated",
	} {
		require.Contains(t, HighlightSQL(sql), "'")
	}
}
