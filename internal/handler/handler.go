package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jukulab/classdesk-backend/internal/repository"
	"github.com/jukulab/classdesk-backend/internal/response"
)

// failFromDB maps storage errors onto the API error taxonomy. Handlers call
// it after their own specific checks.
func failFromDB(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrStudentNotFound),
		errors.Is(err, repository.ErrClassNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrOrderMismatch):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"ids": "must be a permutation of the existing item ids"})
	case errors.Is(err, repository.ErrDuplicateClassName),
		errors.Is(err, repository.ErrDuplicateUsername):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				response.Fail(c, http.StatusConflict, response.ErrConflict)
				return
			case "23503":
				response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
				return
			}
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
