package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/cafepos/pkg/auth"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
	"github.com/shashiranjanraj/cafepos/pkg/response"
)

// Authorizer decides whether a token belongs to a signed-in user.
type Authorizer interface {
	Authorize(ctx context.Context, token auth.Token) (bool, error)
}

// TokenSource pulls the presented token out of a request.
type TokenSource func(r *http.Request) (auth.Token, bool)

// HeaderToken reads the token from the Authorization header.
func HeaderToken(r *http.Request) (auth.Token, bool) {
	return auth.FromHeader(r.Header.Get("Authorization"))
}

// HeaderOrQueryToken falls back to a query parameter when the header carries
// no token. Browsers cannot set headers on a websocket handshake.
func HeaderOrQueryToken(param string) TokenSource {
	return func(r *http.Request) (auth.Token, bool) {
		if t, ok := HeaderToken(r); ok {
			return t, true
		}
		if v := r.URL.Query().Get(param); v != "" {
			return auth.Token(v), true
		}
		return "", false
	}
}

// Auth rejects requests whose token is missing or unknown with
// 401 {"error":"Unauthorized"}. A failing lookup is a 500.
func Auth(a Authorizer, source TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := source(r)
			if !ok {
				response.Unauthorized(w)
				return
			}

			allowed, err := a.Authorize(r.Context(), token)
			if err != nil {
				logger.WithCtx(r.Context()).Error("authorize failed", "error", err.Error())
				response.Internal(w, err)
				return
			}
			if !allowed {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
