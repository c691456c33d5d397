package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

// writeDomainError maps domain error kinds onto the response envelope.
// Anything unrecognized is logged and returned as a generic internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), map[string]string{
			"field": validationErr.Field,
		})
		return
	}

	if sourceErr, ok := domain.AsSourceError(err); ok {
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "external data source is unavailable", map[string]string{
			"source": sourceErr.Source,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotConnected):
		apiErrors.WriteError(w, apiErrors.ErrNotConnected,
			"external service is not connected, reconnect it in settings", nil)

	case errors.Is(err, domain.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "entity not found", nil)

	case errors.Is(err, domain.ErrStaleObject):
		apiErrors.WriteError(w, apiErrors.ErrStaleObject,
			"record was modified concurrently, refetch and retry", nil)

	default:
		log.L.WithError(err).Error("unexpected error handling request")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal server error", nil)
	}
}
