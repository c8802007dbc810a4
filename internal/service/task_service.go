package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/table"
	"github.com/dhriti-ai/console-gateway/pkg/export"
)

type taskClient interface {
	TasksDashboard(ctx context.Context, token string) (*models.TasksDashboard, error)
}

// TaskService backs the worker task panel: assigned projects, workload
// stats and recent reviews.
type TaskService struct {
	client taskClient
	logger *zap.Logger
	last   loader[*models.TasksDashboard]
}

// TasksView is the rendered task panel.
type TasksView struct {
	Stats         models.TasksStats   `json:"stats"`
	Assignments   table.Result        `json:"assignments"`
	RecentReviews []models.TaskReview `json:"recent_reviews"`
}

// NewTaskService constructs the service.
func NewTaskService(client taskClient, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{client: client, logger: logger}
}

func assignmentColumns() []table.Column {
	return []table.Column{
		{Header: "Project", Key: "project_name"},
		{Header: "Avg Task Time", Key: "avg_task_time", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}},
		{Header: "Rating", Key: "rating", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}, Align: "right"},
		{Header: "Completed", Key: "completed", Align: "right"},
		{Header: "Pending", Key: "pending", Align: "right"},
		{Header: "Status", Key: "status"},
	}
}

func assignmentRows(assignments []models.AssignedProject) []table.Row {
	rows := make([]table.Row, 0, len(assignments))
	for _, a := range assignments {
		avg := a.AvgTaskTimeLabel
		if avg == "" && a.AvgTaskTimeMinutes != nil {
			avg = fmt.Sprintf("%d minutes", *a.AvgTaskTimeMinutes)
		}
		rating := ""
		if a.Rating != nil {
			rating = strconv.FormatFloat(*a.Rating, 'f', 2, 64)
		}
		rows = append(rows, table.Row{
			"id":            strconv.Itoa(a.AssignmentID),
			"project_id":    strconv.Itoa(a.ProjectID),
			"project_name":  a.ProjectName,
			"avg_task_time": avg,
			"rating":        rating,
			"completed":     a.CompletedTasks,
			"pending":       a.PendingTasks,
			"status":        a.Status,
		})
	}
	return rows
}

// Panel fetches the worker dashboard and renders the assignments page. A
// failed refresh serves the last loaded panel, marked stale; the first load
// has no fallback and surfaces the error.
func (s *TaskService) Panel(ctx context.Context, sess session.Session, state table.State) (*TasksView, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	gen := s.last.begin()
	dashboard, err := s.client.TasksDashboard(ctx, token)
	if err != nil {
		prior, ok := s.last.snapshot()
		if !ok {
			return nil, err
		}
		s.logger.Warn("task panel refresh failed, serving last loaded panel", zap.Error(err))
		return s.render(prior, state, true), nil
	}

	if !s.last.complete(gen, dashboard) {
		if prior, ok := s.last.snapshot(); ok {
			dashboard = prior
		}
	}
	return s.render(dashboard, state, false), nil
}

func (s *TaskService) render(dashboard *models.TasksDashboard, state table.State, stale bool) *TasksView {
	view := table.NewView(assignmentColumns(), assignmentRows(dashboard.Assignments), table.DefaultOptions())
	res := view.Paginate(state)
	res.Stale = stale
	return &TasksView{
		Stats:         dashboard.Stats,
		Assignments:   res,
		RecentReviews: dashboard.RecentReviews,
	}
}

// Dataset renders the full filtered assignment set for download.
func (s *TaskService) Dataset(ctx context.Context, sess session.Session, query string) (export.Dataset, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return export.Dataset{}, err
	}

	dashboard, err := s.client.TasksDashboard(ctx, token)
	if err != nil {
		return export.Dataset{}, err
	}

	view := table.NewView(assignmentColumns(), assignmentRows(dashboard.Assignments), table.DefaultOptions())
	return dataset(view, query), nil
}
