package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/guard"
	"github.com/dhriti-ai/console-gateway/internal/service"
)

// Guard enforces a route rule using the session loaded by Session. Denied
// requests are answered with a redirect, never an error page: admins and
// workers land on their home views, everyone else on login. The login
// redirect carries the originally requested path so the caller can return
// there after signing in (best effort).
func Guard(rule guard.Rule, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Resolve(SessionFrom(c), rule)
		if decision == guard.Authorized {
			c.Next()
			return
		}

		target := decision.Path()
		if metrics != nil {
			metrics.ObserveGuardRedirect(target)
		}
		if decision == guard.ToLogin {
			target = guard.LoginPath + "?next=" + url.QueryEscape(c.Request.URL.Path)
		}

		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}
