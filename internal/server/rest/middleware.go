package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// bearerToken extracts the opaque token from an "Authorization: Bearer ..."
// header. Returns an empty string when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token get 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, err := s.users.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				s.sendError(w, "Unauthenticated.", http.StatusUnauthorized)
				return
			}
			s.logger.Error(r.Context(), "authenticating request", "error", err)
			s.sendError(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
