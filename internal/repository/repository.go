package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// pgxNoRows aliases pgx.ErrNoRows so update paths signal a vanished row
// the same way read paths do.
var pgxNoRows = pgx.ErrNoRows

// ErrOrderMismatch is returned by reorder operations when the submitted id
// list is not a permutation of the stored collection. Nothing is written.
var ErrOrderMismatch = errors.New("reorder id list does not match the stored collection")
