package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/middleware"
	"github.com/dhriti-ai/console-gateway/internal/service"
	"github.com/dhriti-ai/console-gateway/internal/session"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/export"
	"github.com/dhriti-ai/console-gateway/pkg/response"
)

// ExportHandler streams table views as CSV or PDF downloads. The export
// covers the full filtered set for the current search query, not just the
// visible page.
type ExportHandler struct {
	dashboards *service.DashboardService
	projects   *service.ProjectService
	users      *service.UserService
	tasks      *service.TaskService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(dashboards *service.DashboardService, projects *service.ProjectService, users *service.UserService, tasks *service.TaskService) *ExportHandler {
	return &ExportHandler{
		dashboards: dashboards,
		projects:   projects,
		users:      users,
		tasks:      tasks,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
	}
}

type datasetFunc func(ctx context.Context, sess session.Session, query string) (export.Dataset, error)

// Dashboard exports the admin dashboard stats.
func (h *ExportHandler) Dashboard(c *gin.Context) {
	h.render(c, "dashboard", h.dashboards.Dataset)
}

// Projects exports the project list.
func (h *ExportHandler) Projects(c *gin.Context) {
	h.render(c, "projects", h.projects.Dataset)
}

// Users exports one role tab.
func (h *ExportHandler) Users(c *gin.Context) {
	role, ok := roleForTab(c.Param("tab"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown users tab"))
		return
	}
	h.render(c, "users-"+c.Param("tab"), func(ctx context.Context, sess session.Session, query string) (export.Dataset, error) {
		return h.users.Dataset(ctx, sess, role, query)
	})
}

// Tasks exports the worker's assignments.
func (h *ExportHandler) Tasks(c *gin.Context) {
	h.render(c, "tasks", h.tasks.Dataset)
}

func (h *ExportHandler) render(c *gin.Context, name string, fetch datasetFunc) {
	ds, err := fetch(c.Request.Context(), middleware.SessionFrom(c), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		raw, err := h.csv.Render(ds)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
		c.Data(http.StatusOK, "text/csv", raw)
	case "pdf":
		raw, err := h.pdf.Render(ds, name)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", name))
		c.Data(http.StatusOK, "application/pdf", raw)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
