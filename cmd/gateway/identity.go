package main

import (
	"context"
	"net/http"
	"strings"
)

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
	roleAdmin    = "admin"
)

type userKey struct{}

// requireUser rejects requests without X-User-ID. The header is trusted as
// set by the edge proxy.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerUserID))
		if id == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing "+headerUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, id)))
	})
}

// requireAdmin must run after requireUser.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(strings.TrimSpace(r.Header.Get(headerRole)), roleAdmin) {
			writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
