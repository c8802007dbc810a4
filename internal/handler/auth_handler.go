package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/pkg/config"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/response"
)

// AuthHandler handles the login view and the login/logout flows.
type AuthHandler struct {
	service *service.AuthService
	cfg     config.SessionConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, cfg: cfg}
}

// LoginView serves the public login view descriptor. The optional "next"
// parameter echoes where the user was headed before being redirected here.
func (h *AuthHandler) LoginView(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"view": "login",
		"next": c.Query("next"),
	}, nil)
}

// Login authenticates and opens a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.cfg.CookieName, result.SessionID, int(h.cfg.TTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	response.JSON(c, http.StatusOK, gin.H{
		"role":      result.Role,
		"home_path": result.HomePath,
		"next":      c.Query("next"),
	}, nil)
}

// Me returns the platform-verified identity for the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := h.service.Identity(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, identity, nil)
}

// Logout clears the session and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.SessionID(c); id != "" {
		if err := h.service.Logout(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
	}
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	response.NoContent(c)
}
