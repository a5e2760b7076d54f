package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			// Store sentinels that escaped translation.
			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				switch {
				case errors.Is(err, store.ErrNotFound):
					return &APIError{
						status:  http.StatusNotFound,
						Code:    string(domainerrors.CodeNotFound),
						Message: storeErr.Message,
					}
				case errors.Is(err, store.ErrAlreadyExists):
					return &APIError{
						status:  http.StatusConflict,
						Code:    string(domainerrors.CodeConflict),
						Message: storeErr.Message,
					}
				}
			}
		}

		var details any
		if status < http.StatusInternalServerError {
			if fields := errorDetails(errs); fields != nil {
				details = fields
			}
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
			Details: details,
		}
	}
}

// mapError turns a service error into a huma.StatusError so the response
// carries the domain status, not huma's generic 500.
func mapError(err error) error {
	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}
	return huma.NewError(http.StatusInternalServerError, "unexpected error occurred", err)
}

// errorDetails flattens huma's request validation errors into field messages.
func errorDetails(errs []error) map[string]string {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			out[detail.Location] = detail.Message
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusMethodNotAllowed:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
