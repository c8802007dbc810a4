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

// UserHandler serves the user management tabs and their CRUD endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Index redirects the bare /users path to the first tab.
func (h *UserHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/users/admins")
}

// List renders one role tab's table page.
func (h *UserHandler) List(c *gin.Context) {
	role, ok := roleForTab(c.Param("tab"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown users tab"))
		return
	}

	res, err := h.service.ListByRole(c.Request.Context(), middleware.SessionFrom(c), role, tableState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, &res.Info)
}

// Create submits a new account.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	user, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Update submits account changes.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	user, err := h.service.Update(c.Request.Context(), middleware.SessionFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Delete removes an account. Destructive: requires ?confirm=true.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := h.service.Delete(c.Request.Context(), middleware.SessionFrom(c), id, confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
