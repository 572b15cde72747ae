package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidID reports a malformed uuid literal (invalid_text_representation).
// Such ids cannot match any row.
func isInvalidID(err error) bool {
	return pgCode(err) == "22P02"
}
