package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the
// config asks for it and the URL does not already pin the flag either
// way. CockroachDB-compatible drivers need it; plain Postgres ignores
// it.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name for the otelsql db.name
// attribute. Accepts both URL-style connection strings and key=value
// DSNs.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
