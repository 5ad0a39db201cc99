package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// Directory resolution
	ErrUnitUnknown       = errors.New("unit_unknown")
	ErrBuildingNotMapped = errors.New("building_not_mapped")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// Twilio / SendGrid failures
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError carries an HTTP status and public code from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError responds with the AppError's status, or 500 for anything else.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
