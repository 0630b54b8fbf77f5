package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const claimsContextKey contextKey = "claims"

var (
	ErrMissingToken  = errors.New("missing authorization header")
	ErrInvalidFormat = errors.New("invalid authorization format")
)

// ContextWithClaims returns a new context with the given Claims attached.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts Claims from the context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// RejectFunc writes the response for a request that failed authentication.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware validates bearer tokens on incoming requests.
// Paths in skipPaths bypass authentication. A nil reject writes a bare 401.
func Middleware(jwtService *JWTService, skipPaths []string, reject RejectFunc) func(http.Handler) http.Handler {
	skipSet := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skipSet[p] = struct{}{}
	}
	if reject == nil {
		reject = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := skipSet[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				reject(w, r, ErrMissingToken)
				return
			}
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				reject(w, r, ErrInvalidFormat)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// ErrMissingScope is passed to the reject func when the token lacks a scope.
var ErrMissingScope = errors.New("token does not grant the required scope")

// RequireScope lets a request through only when the claims placed by
// Middleware grant scope. It must run after Middleware.
func RequireScope(scope string, reject RejectFunc) func(http.Handler) http.Handler {
	if reject == nil {
		reject = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !claims.HasScope(scope) {
				reject(w, r, fmt.Errorf("%w: %s", ErrMissingScope, scope))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
