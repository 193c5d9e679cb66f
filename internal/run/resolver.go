package run

// DefaultFilter passes JSON through the filter tool unchanged.
const DefaultFilter = "."

// ModeOf reports whether req runs SQL or opens an interactive session.
func ModeOf(req Request) Mode {
	if req.File == "" && req.SQL == "" {
		return Interactive
	}
	return Execute
}

// ResolveSQL returns the SQL to run. File contents win over the literal
// argument unless the file is empty.
func ResolveSQL(req Request) string {
	if req.FileSQL != "" {
		return req.FileSQL
	}
	return req.SQL
}

// FilterExpression picks the filter tool argument. With a file the first
// positional argument is the filter, since no SQL text is expected there.
func FilterExpression(req Request) string {
	if req.File != "" {
		if req.SQL != "" {
			return req.SQL
		}
		return DefaultFilter
	}
	if req.Filter == "" {
		return DefaultFilter
	}
	return req.Filter
}
