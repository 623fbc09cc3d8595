package db

import (
	"errors"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Translate classifies store errors: missing rows become NotFound, unique and
// foreign-key violations become ConstraintViolation. Anything else is
// returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Constraint("duplicate key", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Constraint("duplicate "+constraintSubject(pgErr), err)
		case pgForeignKeyViolation:
			return apperr.Constraint("referenced row does not exist", err)
		}
	}
	return err
}

// ConstraintName returns the violated constraint, if err carries one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func constraintSubject(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "key"
}
