package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/table"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/export"
)

type projectClient interface {
	ListProjects(ctx context.Context, token string) ([]models.Project, error)
	CreateProject(ctx context.Context, token string, req models.CreateProjectRequest) (*models.Project, error)
	ListAdminUsers(ctx context.Context, token string) ([]models.User, error)
	CreateAssignment(ctx context.Context, token string, req models.CreateAssignmentRequest) (*models.Assignment, error)
}

// ProjectService backs the admin projects view and the assignment form.
type ProjectService struct {
	client    projectClient
	validator *validator.Validate
	logger    *zap.Logger
	last      loader[[]models.Project]
}

// NewProjectService constructs the service.
func NewProjectService(client projectClient, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProjectService{client: client, validator: validate, logger: logger}
}

func projectColumns() []table.Column {
	return []table.Column{
		{Header: "Name", Key: "name"},
		{Header: "Status", Key: "status", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}},
		{Header: "Avg Task Time", Key: "avg_task_time", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}, Align: "right"},
	}
}

func projectRows(projects []models.Project) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		avg := ""
		if p.DefaultAvgTaskTimeMinutes != nil {
			avg = fmt.Sprintf("%d minutes", *p.DefaultAvgTaskTimeMinutes)
		}
		rows = append(rows, table.Row{
			"id":            strconv.Itoa(p.ID),
			"name":          p.Name,
			"status":        p.Status,
			"avg_task_time": avg,
		})
	}
	return rows
}

// List fetches every project and renders the requested table page. Edit and
// delete actions are not offered: projects are append-only in the console.
// A failed refresh serves the last loaded set, marked stale.
func (s *ProjectService) List(ctx context.Context, sess session.Session, state table.State) (*table.Result, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	gen := s.last.begin()
	projects, err := s.client.ListProjects(ctx, token)
	if err != nil {
		prior, ok := s.last.snapshot()
		if !ok {
			return nil, err
		}
		s.logger.Warn("project refresh failed, serving last loaded set", zap.Error(err))
		return s.render(prior, state, true), nil
	}

	if !s.last.complete(gen, projects) {
		if prior, ok := s.last.snapshot(); ok {
			projects = prior
		}
	}
	return s.render(projects, state, false), nil
}

func (s *ProjectService) render(projects []models.Project, state table.State, stale bool) *table.Result {
	view := table.NewView(projectColumns(), projectRows(projects), table.DefaultOptions())
	res := view.Paginate(state)
	res.Stale = stale
	return &res
}

// Create validates and submits a new project. Duplicate names surface the
// platform's detail message.
func (s *ProjectService) Create(ctx context.Context, sess session.Session, req models.CreateProjectRequest) (*models.Project, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}
	if req.Status == "" {
		req.Status = "Active"
	}

	project, err := s.client.CreateProject(ctx, token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", zap.String("name", project.Name))
	return project, nil
}

// AssignableUsers lists the accounts an assignment can target.
func (s *ProjectService) AssignableUsers(ctx context.Context, sess session.Session) ([]models.User, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}
	return s.client.ListAdminUsers(ctx, token)
}

// Assign validates and submits a project assignment.
func (s *ProjectService) Assign(ctx context.Context, sess session.Session, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	assignment, err := s.client.CreateAssignment(ctx, token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project assigned",
		zap.Int("project_id", assignment.ProjectID),
		zap.Int("user_id", assignment.UserID),
	)
	return assignment, nil
}

// Dataset renders the full filtered project set for download.
func (s *ProjectService) Dataset(ctx context.Context, sess session.Session, query string) (export.Dataset, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return export.Dataset{}, err
	}

	projects, err := s.client.ListProjects(ctx, token)
	if err != nil {
		return export.Dataset{}, err
	}

	view := table.NewView(projectColumns(), projectRows(projects), table.DefaultOptions())
	return dataset(view, query), nil
}
