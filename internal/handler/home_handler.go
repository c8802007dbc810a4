package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/guard"
	"github.com/dhriti-ai/console-gateway/internal/middleware"
)

// HomeHandler dispatches the root path to the session's starting view.
type HomeHandler struct{}

// NewHomeHandler constructs the handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Redirect sends the caller to login, the task panel or the admin
// dashboard depending on session state. The root renders nothing itself.
func (h *HomeHandler) Redirect(c *gin.Context) {
	c.Redirect(http.StatusFound, guard.ResolveHome(middleware.SessionFrom(c)))
}
