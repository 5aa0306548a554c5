// Package web provides the HTTP JSON API a browser widget talks to. It
// exposes the conversation, citation highlighting and the admin document
// store over gin.
package web

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/services"
)

var (
	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("web: chat service is required")

	// ErrMissingCitationService is returned when the citation service is not provided.
	ErrMissingCitationService = errors.New("web: citation service is required")

	// ErrMissingReferenceService is returned when the reference service is not provided.
	ErrMissingReferenceService = errors.New("web: reference service is required")
)

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrReferenceOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrTurnInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrLinkIntakeUnavailable):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
