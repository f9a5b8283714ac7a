package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cvforge/cvforge-go/internal/crypto"
	"github.com/cvforge/cvforge-go/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver loads the principal a verified token points at.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header, resolves the embedded user id against the store and
// attaches the principal to the request context. Every failure short-circuits
// with 401 before the handler runs.
func JWTAuth(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			// The principal travels without its credential.
			user.PasswordHash = ""

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated principal from the request
// context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
