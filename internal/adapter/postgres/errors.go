package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// SQLSTATE codes mapped onto domain errors.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"23514": domain.ErrValidation,    // check_violation
	"22001": domain.ErrValidation,    // string_data_right_truncation
}

// MapError converts a pgx error to a domain error labelled with the entity
// and key being accessed. Context errors pass through unmapped.
func MapError(err error, entity string, key string) error {
	if err == nil {
		return nil
	}

	mapped := err
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
	case errors.Is(err, pgx.ErrNoRows):
		mapped = domain.ErrNotFound
	case errors.As(err, &pgErr):
		if sentinel, ok := pgCodeErrors[pgErr.Code]; ok {
			mapped = sentinel
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, mapped)
}
