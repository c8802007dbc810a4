// Package upstream is the HTTP client for the Dhriti.AI platform API. The
// gateway never owns data; every read and mutation goes through here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/pkg/config"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
)

// Observer records upstream call metrics. Nil observers are allowed.
type Observer interface {
	ObserveUpstreamCall(op string, status int, duration time.Duration)
}

// Client talks to the platform API with JSON bodies and bearer auth.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics Observer
}

// New constructs a client. The timeout bounds every call unless the request
// context expires first.
func New(cfg config.UpstreamConfig, logger *zap.Logger, metrics Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: metrics,
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, models.Role, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return "", "", err
	}
	if out.AccessToken == "" {
		return "", "", appErrors.Clone(appErrors.ErrUpstream, "login response missing access token")
	}
	return out.AccessToken, models.Role(out.Role), nil
}

// Me returns the identity behind a token.
func (c *Client) Me(ctx context.Context, token string) (*models.Identity, error) {
	var out models.Identity
	if err := c.do(ctx, "me", http.MethodGet, "/protected", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardSummary fetches the admin dashboard stat cards.
func (c *Client) DashboardSummary(ctx context.Context, token string) (*models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := c.do(ctx, "dashboard_summary", http.MethodGet, "/dashboard/summary", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TasksDashboard fetches the worker task panel payload.
func (c *Client) TasksDashboard(ctx context.Context, token string) (*models.TasksDashboard, error) {
	var out models.TasksDashboard
	if err := c.do(ctx, "tasks_dashboard", http.MethodGet, "/tasks/dashboard", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects fetches every annotation project.
func (c *Client) ListProjects(ctx context.Context, token string) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, "list_projects", http.MethodGet, "/tasks/admin/projects", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates an annotation project.
func (c *Client) CreateProject(ctx context.Context, token string, req models.CreateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, "create_project", http.MethodPost, "/tasks/admin/projects", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdminUsers fetches the user summaries used by assignment forms.
func (c *Client) ListAdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, "list_admin_users", http.MethodGet, "/tasks/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAssignment assigns a project to a worker.
func (c *Client) CreateAssignment(ctx context.Context, token string, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	var out models.Assignment
	if err := c.do(ctx, "create_assignment", http.MethodPost, "/tasks/admin/assignments", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches every platform account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, "list_users", http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a platform account.
func (c *Client) CreateUser(ctx context.Context, token string, req models.CreateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, "create_user", http.MethodPost, "/users", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates a platform account.
func (c *Client) UpdateUser(ctx context.Context, token string, id int, req models.UpdateUserRequest) (*models.User, error) {
	var out models.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, "update_user", http.MethodPut, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deletes a platform account. The platform answers 204.
func (c *Client) DeleteUser(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("/users/%d", id)
	return c.do(ctx, "delete_user", http.MethodDelete, path, token, nil, nil)
}

// do performs one upstream round trip: encode, send, classify, decode.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, time.Since(start))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "platform API unreachable")
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

// errorFrom maps an upstream failure to a typed error, preferring the
// response's detail field. An unparseable body must not crash the caller.
func (c *Client) errorFrom(op string, resp *http.Response) error {
	detail := ""
	var payload struct {
		Detail string `json:"detail"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(raw, &payload) == nil {
			detail = payload.Detail
		}
	}

	c.logger.Warn("upstream call failed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", detail),
	)

	var base *appErrors.Error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = appErrors.ErrUnauthorized
	case http.StatusForbidden:
		base = appErrors.ErrForbidden
	case http.StatusNotFound:
		base = appErrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		base = appErrors.ErrValidation
	default:
		base = appErrors.ErrUpstream
	}
	if detail == "" {
		detail = fmt.Sprintf("request failed (%s)", http.StatusText(resp.StatusCode))
	}
	return appErrors.Clone(base, detail)
}

func (c *Client) observe(op string, status int, d time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveUpstreamCall(op, status, d)
	}
}
