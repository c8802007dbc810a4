package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/guard"
	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/pkg/config"
	"github.com/dhriti-ai/console-gateway/pkg/logger"
	corsmiddleware "github.com/dhriti-ai/console-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/dhriti-ai/console-gateway/pkg/middleware/requestid"
)

// RouterParams carries the wired dependencies for route registration.
type RouterParams struct {
	Config    *config.Config
	Logger    *zap.Logger
	Sessions  *session.Manager
	Metrics   *service.MetricsService
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Projects  *service.ProjectService
	Users     *service.UserService
	Tasks     *service.TaskService
}

// NewRouter builds the console route tree: public login, the root
// dispatcher, and the guarded admin/worker views.
func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(middleware.Session(p.Sessions, p.Config.Session.CookieName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if p.Metrics != nil {
		r.GET("/metrics", gin.WrapH(p.Metrics.Handler()))
	}

	authHandler := NewAuthHandler(p.Auth, p.Config.Session)
	homeHandler := NewHomeHandler()
	dashboardHandler := NewDashboardHandler(p.Dashboard)
	projectHandler := NewProjectHandler(p.Projects)
	userHandler := NewUserHandler(p.Users)
	taskHandler := NewTaskHandler(p.Tasks)

	r.GET("/login", authHandler.LoginView)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/me", authHandler.Me)

	r.GET("/", homeHandler.Redirect)
	r.NoRoute(homeHandler.Redirect)

	adminOnly := middleware.Guard(guard.AdminOnly, p.Metrics)
	anyRole := middleware.Guard(guard.AnyWorkerOrAdmin, p.Metrics)

	r.GET("/dashboard", adminOnly, dashboardHandler.Summary)

	r.GET("/projects", adminOnly, projectHandler.List)
	r.GET("/projects/new", adminOnly, projectHandler.NewForm)
	r.POST("/projects", adminOnly, projectHandler.Create)
	r.POST("/projects/assignments", adminOnly, projectHandler.Assign)

	r.GET("/users", adminOnly, userHandler.Index)
	r.GET("/users/:tab", adminOnly, userHandler.List)
	r.POST("/users", adminOnly, userHandler.Create)
	r.PUT("/users/:id", adminOnly, userHandler.Update)
	r.DELETE("/users/:id", adminOnly, userHandler.Delete)

	r.GET("/tasks", anyRole, taskHandler.Panel)

	if p.Config.Export.Enabled {
		exportHandler := NewExportHandler(p.Dashboard, p.Projects, p.Users, p.Tasks)
		r.GET("/dashboard/export", adminOnly, exportHandler.Dashboard)
		r.GET("/projects/export", adminOnly, exportHandler.Projects)
		r.GET("/users/:tab/export", adminOnly, exportHandler.Users)
		r.GET("/tasks/export", anyRole, exportHandler.Tasks)
	}

	return r
}
