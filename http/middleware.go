package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/rathodv/maya"
)

type contextKey int

const userIDContextKey contextKey = 1

// requireAuth verifies the Bearer token on the request and stores the
// authenticated user ID in the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			Error(w, r, maya.Errorf(maya.EUNAUTHORIZED, "missing bearer token"))
			return
		}
		userID, err := s.TokenService.Verify(auth[len(prefix):])
		if err != nil {
			Error(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user ID stored by
// requireAuth, or "" outside an authenticated request.
func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}
