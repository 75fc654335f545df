package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(token string) (domain.Actor, error)
}

// Auth requires a valid bearer token and stores the actor it names in the
// request context. Requests without one are rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="doccontrol"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			actor, err := validator.ValidateToken(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="doccontrol", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
				return
			}

			if h := actorHolderFrom(r.Context()); h != nil {
				h.actor, h.set = actor, true
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithActor(r.Context(), actor)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// actorHolder lets outer middleware see the actor resolved further in.
type actorHolder struct {
	actor domain.Actor
	set   bool
}

type holderKey struct{}

func withActorHolder(ctx context.Context, h *actorHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func actorHolderFrom(ctx context.Context) *actorHolder {
	h, _ := ctx.Value(holderKey{}).(*actorHolder)
	return h
}
