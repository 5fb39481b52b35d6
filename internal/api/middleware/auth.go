package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/blokus-go/internal/api/apierr"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/auth"
)

type contextKey string

const seatContextKey contextKey = "seat"

// SeatAuth requires a bearer seat token for the game named by the {id}
// route variable
func SeatAuth(authService auth.ServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			seat, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			if id, ok := mux.Vars(r)["id"]; ok && model.GameID(id) != seat.GameID {
				apierr.WriteError(w, apierr.NewWrongSeatError())
				return
			}

			ctx := context.WithValue(r.Context(), seatContextKey, seat)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the seat token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetSeat returns the authenticated seat from the request context
func GetSeat(ctx context.Context) *auth.Seat {
	seat, _ := ctx.Value(seatContextKey).(*auth.Seat)
	return seat
}

// MustGetSeat returns the authenticated seat or panics
func MustGetSeat(ctx context.Context) *auth.Seat {
	seat := GetSeat(ctx)
	if seat == nil {
		panic("no seat in context - auth middleware not applied?")
	}
	return seat
}
