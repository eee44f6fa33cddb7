package server

import (
	"errors"
	"net/http"

	"github.com/marketpulse/seo-audit/internal/validate"
)

// auditError maps a pipeline error to the HTTP status, user-facing message,
// and metrics outcome label. Validation failures are the caller's fault and
// get specific messages; anything past validation is reported generically so
// internal diagnostics stay server-side.
func auditError(err error) (status int, message, outcome string) {
	var (
		invalidErr *validate.InvalidURLError
		schemeErr  *validate.UnsupportedSchemeError
		fileErr    *validate.FileSchemeError
		blockedErr *validate.BlockedHostError
	)

	switch {
	case errors.As(err, &invalidErr):
		return http.StatusBadRequest, "Invalid URL format", "invalid_url"
	case errors.As(err, &schemeErr):
		return http.StatusBadRequest, "Only HTTP and HTTPS URLs are supported", "invalid_url"
	case errors.As(err, &fileErr):
		return http.StatusBadRequest, "File URLs are not allowed", "invalid_url"
	case errors.As(err, &blockedErr):
		return http.StatusBadRequest, "Cannot audit internal or private URLs", "invalid_url"
	default:
		return http.StatusInternalServerError, "Failed to perform SEO audit", "fetch_failed"
	}
}
