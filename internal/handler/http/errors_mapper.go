package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/avoronin/go-task-keeper/internal/service"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/internal/utils"
	"github.com/avoronin/go-task-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusBadRequest,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrTaskNotFound:       http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	store.ErrStorageUnavailable: http.StatusServiceUnavailable,
	context.DeadlineExceeded:    http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a service or storage error to its HTTP status and writes
// the uniform JSON error body. Validation failures additionally carry the
// per-field messages; 5xx responses never leak internal error text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		utils.WriteJSON(w, models.ErrorResponse{
			Message: "validation failed",
			Errors:  validationErr.Fields,
		}, status)
		return
	}

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		for target := range errorStatusMap {
			if errors.Is(err, target) {
				message = target.Error()
				break
			}
		}
	}

	utils.WriteJSONError(w, message, status)
}
