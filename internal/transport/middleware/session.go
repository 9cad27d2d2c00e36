package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/pkg/ctxutil"
)

type sessionResolver interface {
	Resolve(ctx context.Context, token string) domain.Session
}

type sessionKey struct{}

// Session returns middleware that resolves the session cookie on every
// request and stores the result in the context. A missing or invalid
// cookie yields the anonymous session; the request is never rejected here.
func Session(resolver sessionResolver, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := domain.AnonymousSession()
			if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
				sess = resolver.Resolve(r.Context(), c.Value)
			}

			ctx := WithSession(r.Context(), sess)
			if sess.Authenticated {
				ctx = ctxutil.WithSessionID(ctx, sess.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession stores sess in the context.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromCtx returns the session stored by the Session middleware, or
// the anonymous session.
func SessionFromCtx(ctx context.Context) domain.Session {
	sess, ok := ctx.Value(sessionKey{}).(domain.Session)
	if !ok {
		return domain.AnonymousSession()
	}
	return sess
}
