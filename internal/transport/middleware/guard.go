package middleware

import "net/http"

// RequireAuth serves the wrapped handler only for authenticated sessions
// and redirects everybody else to loginPath.
func RequireAuth(loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFromCtx(r.Context()).Authenticated {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireGuest serves the wrapped handler only for unauthenticated sessions
// and redirects signed-in users to homePath.
func RequireGuest(homePath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromCtx(r.Context()).Authenticated {
				http.Redirect(w, r, homePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
