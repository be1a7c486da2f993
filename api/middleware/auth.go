package middleware

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/MonkyMars/gecho"
)

// RequireAdmin guards operator routes with an admin bearer token. Without a
// configured secret the guard lets everything through.
func (mw *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := mw.cfg.Auth.AdminSecret
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := lib.BearerToken(r)
			if err != nil {
				handling.HandleError(err, "missing admin token", mw.logger, w, r)
				return
			}

			claims, err := lib.ParseAdminToken(token, secret)
			if err != nil {
				handling.HandleError(err, "invalid admin token", mw.logger, w, r)
				return
			}

			mw.logger.Debug("Admin request authorized", gecho.Field("sub", claims.Sub), gecho.Field("path", r.URL.Path))
			next.ServeHTTP(w, r)
		})
	}
}
