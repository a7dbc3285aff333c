package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintViolation reports whether err is a PostgreSQL error with the given
// SQLSTATE code, and if so which constraint it names
func constraintViolation(err error, code string) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if string(pqErr.Code) != code {
		return "", false
	}
	return pqErr.Constraint, true
}

func isUniqueViolation(err error, constraint string) bool {
	name, ok := constraintViolation(err, pgUniqueViolation)
	return ok && (constraint == "" || name == constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	name, ok := constraintViolation(err, pgForeignKeyViolation)
	return ok && (constraint == "" || name == constraint)
}
