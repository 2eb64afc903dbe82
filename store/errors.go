package store

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

// isUniqueViolation matches the constraint error text of the sqlite driver.
// modernc.org/sqlite does not export a typed constraint error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
