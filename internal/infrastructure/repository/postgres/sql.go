package postgres

import (
	"database/sql"
	"errors"
)

// isNotFound reports whether a query came back empty. Repositories
// translate it into an ok=false result instead of an error.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
