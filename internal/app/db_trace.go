package app

import "strings"

// tracedQueryLimit caps the statement text recorded on db spans so the
// multi-line sqlx queries in the repositories stay readable in Uptrace.
const tracedQueryLimit = 512

func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > tracedQueryLimit {
		return compact[:tracedQueryLimit] + "..."
	}
	return compact
}
