package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/table"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/export"
)

type userClient interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	CreateUser(ctx context.Context, token string, req models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, token string, id int, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, token string, id int) error
}

// UserService backs the admins/experts/vendors user management tabs.
type UserService struct {
	client    userClient
	validator *validator.Validate
	logger    *zap.Logger
	// last holds the full unfiltered account list so every role tab can
	// fall back to it.
	last loader[[]models.User]
}

// NewUserService constructs the service.
func NewUserService(client userClient, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{client: client, validator: validate, logger: logger}
}

func userColumns() []table.Column {
	return []table.Column{
		{Header: "Name", Key: "name"},
		{Header: "Email", Key: "email"},
		{Header: "Phone", Key: "phone", Render: func(v any, _ table.Row) string {
			return orDash(table.Stringify(v))
		}},
		{Header: "Status", Key: "status", Render: func(v any, _ table.Row) string {
			s := table.Stringify(v)
			if s == "" {
				return "Unknown"
			}
			return s
		}},
	}
}

func userRows(users []models.User) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		status := u.Status
		if status == "" {
			status = "Active"
		}
		rows = append(rows, table.Row{
			"id":     strconv.Itoa(u.ID),
			"name":   u.Name,
			"email":  u.Email,
			"phone":  u.Phone,
			"status": status,
			"role":   string(u.Role),
		})
	}
	return rows
}

// filterByRole keeps the accounts whose role equals the tab's role. The
// platform returns the full set; the split is client-side.
func filterByRole(users []models.User, role models.Role) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// ListByRole fetches all users, filters to one role tab and renders the
// requested table page with edit/delete actions. A failed refresh serves the
// last loaded accounts, marked stale.
func (s *UserService) ListByRole(ctx context.Context, sess session.Session, role models.Role, state table.State) (*table.Result, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}
	if !role.Known() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role tab")
	}

	gen := s.last.begin()
	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		prior, ok := s.last.snapshot()
		if !ok {
			return nil, err
		}
		s.logger.Warn("user refresh failed, serving last loaded accounts", zap.Error(err))
		return s.render(prior, role, state, true), nil
	}

	if !s.last.complete(gen, users) {
		if prior, ok := s.last.snapshot(); ok {
			users = prior
		}
	}
	return s.render(users, role, state, false), nil
}

func (s *UserService) render(users []models.User, role models.Role, state table.State, stale bool) *table.Result {
	opts := table.DefaultOptions()
	opts.Actions = table.Actions{Edit: true, Delete: true}
	view := table.NewView(userColumns(), userRows(filterByRole(users, role)), opts)
	res := view.Paginate(state)
	res.Stale = stale
	return &res
}

// Create validates and submits a new account.
func (s *UserService) Create(ctx context.Context, sess session.Session, req models.CreateUserRequest) (*models.User, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if req.Status == "" {
		req.Status = "Active"
	}

	user, err := s.client.CreateUser(ctx, token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return user, nil
}

// Update validates and submits account changes.
func (s *UserService) Update(ctx context.Context, sess session.Session, id int, req models.UpdateUserRequest) (*models.User, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.client.UpdateUser(ctx, token, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int("id", id))
	return user, nil
}

// Delete removes an account. The destructive step is gated behind an
// explicit confirmation; without it no upstream call is made.
func (s *UserService) Delete(ctx context.Context, sess session.Session, id int, confirmed bool) error {
	token, err := sessionToken(sess)
	if err != nil {
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmRequired, "deleting a user cannot be undone; confirm to proceed")
	}

	if err := s.client.DeleteUser(ctx, token, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int("id", id))
	return nil
}

// Dataset renders one role tab's full filtered set for download.
func (s *UserService) Dataset(ctx context.Context, sess session.Session, role models.Role, query string) (export.Dataset, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return export.Dataset{}, err
	}

	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return export.Dataset{}, err
	}

	view := table.NewView(userColumns(), userRows(filterByRole(users, role)), table.DefaultOptions())
	return dataset(view, query), nil
}
