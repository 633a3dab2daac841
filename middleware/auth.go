package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/contra19/book-search/service"
)

type contextKey string

const identityKey contextKey = "identity"

// maxSniffBytes bounds how much of a request body the authenticator will
// buffer while looking for an embedded token field.
const maxSniffBytes = 1 << 20

// Auth locates a bearer token and, when it verifies, attaches the identity
// to the request context. It never rejects: a missing or bad token just
// leaves the request unauthenticated, and handlers that need an identity
// enforce it themselves. Runs once per request, before any handler.
func Auth(tokens *service.TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			res := tokens.Verify(token)
			if res.Status != service.TokenValid {
				log.Printf("auth: %s token on %s %s", res.Status, r.Method, r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), res.Identity)))
		})
	}
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id *service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity, or false when the
// request carried no valid token.
func IdentityFromContext(ctx context.Context) (*service.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*service.Identity)
	return id, ok
}

// TokenFromRequest extracts a bearer token from, in order of precedence, a
// JSON body field "token", a query parameter "token", or the Authorization
// header (taking the part after "Bearer ").
func TokenFromRequest(r *http.Request) string {
	if tok := tokenFromBody(r); tok != "" {
		return tok
	}
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.Split(auth, " ")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return ""
}

// tokenFromBody peeks at a JSON body for a top-level "token" field and
// restores r.Body so the handler can decode it again.
func tokenFromBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		return ""
	}
	buf, err := io.ReadAll(io.LimitReader(r.Body, maxSniffBytes))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil {
		return ""
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		return ""
	}
	return body.Token
}
