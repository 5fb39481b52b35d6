package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blokus-go/internal/api/apierr"
	"github.com/mcoot/blokus-go/internal/middleware"
)

// Recovery answers a panicking API handler with the INTERNAL_ERROR body,
// so clients always receive the API's JSON error shape
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
