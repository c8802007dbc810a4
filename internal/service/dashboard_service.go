package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/table"
	"github.com/dhriti-ai/console-gateway/pkg/export"
)

type dashboardClient interface {
	DashboardSummary(ctx context.Context, token string) (*models.DashboardSummary, error)
}

// DashboardService backs the admin dashboard view.
type DashboardService struct {
	client dashboardClient
	logger *zap.Logger
	last   loader[*models.DashboardSummary]
}

// DashboardView is the rendered admin dashboard.
type DashboardView struct {
	Stats []models.StatCard `json:"stats"`
	Table table.Result      `json:"table"`
}

// NewDashboardService constructs the service.
func NewDashboardService(client dashboardClient, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{client: client, logger: logger}
}

func statColumns() []table.Column {
	return []table.Column{
		{Header: "Metric", Key: "label"},
		{Header: "Value", Key: "value"},
		{Header: "Trend", Key: "trend", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}},
	}
}

func statRows(stats []models.StatCard) []table.Row {
	rows := make([]table.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, table.Row{
			"id":    s.ID,
			"label": s.Label,
			"value": s.Value,
			"trend": s.Trend,
		})
	}
	return rows
}

// Summary fetches the dashboard stats and renders the requested table page.
// A failed refresh falls back to the last loaded summary, marked stale; the
// first load has no fallback and surfaces the error.
func (s *DashboardService) Summary(ctx context.Context, sess session.Session, state table.State) (*DashboardView, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	gen := s.last.begin()
	summary, err := s.client.DashboardSummary(ctx, token)
	if err != nil {
		prior, ok := s.last.snapshot()
		if !ok {
			return nil, err
		}
		s.logger.Warn("dashboard refresh failed, serving last loaded stats", zap.Error(err))
		return s.render(prior, state, true), nil
	}

	if !s.last.complete(gen, summary) {
		// A newer load already published; serve that instead.
		if prior, ok := s.last.snapshot(); ok {
			summary = prior
		}
	}
	return s.render(summary, state, false), nil
}

func (s *DashboardService) render(summary *models.DashboardSummary, state table.State, stale bool) *DashboardView {
	view := table.NewView(statColumns(), statRows(summary.Stats), table.DefaultOptions())
	res := view.Paginate(state)
	res.Stale = stale
	return &DashboardView{Stats: summary.Stats, Table: res}
}

// Dataset renders the full filtered stat set for download.
func (s *DashboardService) Dataset(ctx context.Context, sess session.Session, query string) (export.Dataset, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return export.Dataset{}, err
	}

	summary, err := s.client.DashboardSummary(ctx, token)
	if err != nil {
		return export.Dataset{}, err
	}

	view := table.NewView(statColumns(), statRows(summary.Stats), table.DefaultOptions())
	return dataset(view, query), nil
}
