package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"talenttrack/internal/app"
)

// ClientCookieName identifies the browser or device across requests.
const ClientCookieName = "talenttrack_client"

// clientCookieMaxAge keeps the client id for a year; the session inside it is
// ended by logout, not by cookie expiry.
const clientCookieMaxAge = 365 * 24 * 60 * 60

type contextKey string

const clientContextKey contextKey = "client"

// ClientResolver returns the live Client for a client id.
type ClientResolver interface {
	Get(ctx context.Context, id string) (*app.Client, error)
}

// Clients returns middleware that resolves the requesting client from its cookie,
// issuing a new client id when the cookie is missing or malformed.
// POST: Downstream handlers find the Client with ClientFromContext
func Clients(resolver ClientResolver, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(ClientCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				SetClientCookie(w, id, secure)
			}

			c, err := resolver.Get(r.Context(), id)
			if err != nil {
				slog.Error("client_event", "event", "resolve_failed", "client_id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "internal", "Internal Server Error")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClient(r.Context(), c)))
		})
	}
}

// ClientFromContext extracts the Client from the request context.
func ClientFromContext(ctx context.Context) (*app.Client, bool) {
	c, ok := ctx.Value(clientContextKey).(*app.Client)
	return c, ok && c != nil
}

// ContextWithClient returns a context carrying c.
func ContextWithClient(ctx context.Context, c *app.Client) context.Context {
	return context.WithValue(ctx, clientContextKey, c)
}

// SetClientCookie sets the client cookie on the response.
func SetClientCookie(w http.ResponseWriter, id string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
	})
}
