package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/pkg/response"
)

// TaskHandler serves the worker task panel.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// Panel renders assignments, workload stats and recent reviews.
func (h *TaskHandler) Panel(c *gin.Context) {
	view, err := h.service.Panel(c.Request.Context(), middleware.SessionFrom(c), tableState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, &view.Assignments.Info)
}
