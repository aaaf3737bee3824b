package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rgehrsitz/gravityless/internal/api/response"
)

type ownerKey struct{}

// WithOwner returns a context carrying the authenticated owner id
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the owner id set by RequireOwner
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok && owner != ""
}

// RequireOwner verifies an HS256 bearer token and scopes the request to its subject.
// Tokens are issued elsewhere; this service only checks them.
func RequireOwner(secret []byte) func(http.Handler) http.Handler {
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Malformed Authorization header")
				return
			}

			claims := &jwt.RegisteredClaims{}
			if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, keyFunc); err != nil {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Token has no subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), subject)))
		})
	}
}
