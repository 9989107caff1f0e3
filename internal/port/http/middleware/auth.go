package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
)

const (
	msgInvalidToken    = "Invalid or missing token"
	msgUnauthorized    = "UnAuthorized Access"
	msgAdminCheckError = "Error in admin middleware"
)

// UserLookup loads the current state of the signed-in user.
type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*entity.User, error)
}

// JWTAuth verifies the Authorization header and puts the caller identity
// into the request context. Both "<token>" and "Bearer <token>" are accepted.
func JWTAuth(parser auth.TokenParser, log logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromHeader(r.Header.Get("Authorization"))
			if token == "" {
				log.Warnw("authorization header missing", "path", r.URL.Path)
				unauthorized(w, msgInvalidToken)
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				log.Warnw("token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after JWTAuth. The role is read from the user store,
// not from the token, so a demoted admin is refused immediately.
func RequireAdmin(users UserLookup, log logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("RequireAdmin")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w, msgUnauthorized)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				log.Warnw("admin route denied, user no longer exists", "path", r.URL.Path, "user_id", userID)
				unauthorized(w, msgUnauthorized)
				return
			case err != nil:
				log.Errorw("failed to load user for admin check", "user_id", userID, "error", err)
				unauthorized(w, msgAdminCheckError)
				return
			case !user.Role.IsAdmin():
				log.Warnw("admin route denied", "path", r.URL.Path, "user_id", userID)
				unauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
