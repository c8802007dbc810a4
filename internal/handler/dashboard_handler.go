package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/pkg/response"
)

// DashboardHandler serves the admin dashboard view.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary renders the dashboard stats and their table page.
func (h *DashboardHandler) Summary(c *gin.Context) {
	view, err := h.service.Summary(c.Request.Context(), middleware.SessionFrom(c), tableState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, &view.Table.Info)
}
