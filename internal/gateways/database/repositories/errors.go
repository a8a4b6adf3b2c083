package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sellfast/marketplace/internal/apperr"
)

// lookupErr turns a missing row into a NotFound for what and wraps anything else.
func lookupErr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what + " not found")
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
