package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// =============================================================================
// IDENTITY - Bearer-token resolution at the API edge
// =============================================================================
// The engine only ever sees an opaque user identifier; token validation
// stays here at the boundary. In dev mode every request runs as a single
// generated identity so the app is usable without an identity provider.

type contextKey string

const userIDKey contextKey = "userID"

// Authenticator resolves the requesting user from a JWT bearer token.
type Authenticator struct {
	secret  []byte
	devUser string
}

// NewAuthenticator builds an authenticator validating HS256 tokens signed
// with secret. An empty secret enables dev mode: all requests share one
// generated user identity.
func NewAuthenticator(secret string) *Authenticator {
	a := &Authenticator{secret: []byte(secret)}
	if secret == "" {
		a.devUser = uuid.NewString()
	}
	return a
}

// Middleware attaches the resolved user ID to the request context, or
// rejects the request with 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.devUser != "" {
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), a.devUser)))
			return
		}

		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := a.subjectOf(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) subjectOf(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// userIDFrom returns the authenticated user ID stored by the middleware.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
