package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE da violação de exclusion constraint.
const pgExclusionViolation = "23P01"

// IsExclusionConflict detecta a violação da exclusion constraint de horários
// (appointments_no_overlap). Equivale a slot_taken.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
