package routing

import (
	"context"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zeptools/gw-invoice/responses"
	"github.com/zeptools/gw-invoice/sec"
)

type claimsKey struct{}

// TokenVerifier is satisfied by *sec.Verifier
type TokenVerifier interface {
	Verify(signedToken string) (jwt.MapClaims, error)
}

var _ TokenVerifier = (*sec.Verifier)(nil)

// AuthWrapper rejects requests without a valid bearer token and puts the
// verified claims into the request context
type AuthWrapper struct {
	Verifier TokenVerifier
}

func (a AuthWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sec.ExtractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer`)
			responses.WriteErrorJSON(w, http.StatusUnauthorized, responses.CodeUnauthorized, "missing bearer token")
			return
		}
		claims, err := a.Verifier.Verify(token)
		if err != nil {
			log.Printf("[WARN][Auth] rejected token: %v", err)
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			responses.WriteErrorJSON(w, http.StatusUnauthorized, responses.CodeUnauthorized, "invalid token")
			return
		}
		inner.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// ClaimsFromContext returns the claims AuthWrapper verified, if any
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.MapClaims)
	return claims, ok
}
