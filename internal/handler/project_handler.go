package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/service"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/response"
)

// ProjectHandler serves project management endpoints.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// List renders the projects table page.
func (h *ProjectHandler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), middleware.SessionFrom(c), tableState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, &res.Info)
}

// NewForm serves the "new project" form options: selectable statuses and
// the accounts an assignment can target.
func (h *ProjectHandler) NewForm(c *gin.Context) {
	users, err := h.service.AssignableUsers(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"statuses": []string{"Active", "Paused", "Completed"},
		"users":    users,
	}, nil)
}

// Create submits a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	project, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Assign submits a project assignment for a worker.
func (h *ProjectHandler) Assign(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	assignment, err := h.service.Assign(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}
