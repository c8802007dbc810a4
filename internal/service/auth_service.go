package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dhriti-ai/console-gateway/internal/guard"
	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
)

type loginClient interface {
	Login(ctx context.Context, email, password string) (string, models.Role, error)
	Me(ctx context.Context, token string) (*models.Identity, error)
}

// AuthService drives login and logout against the platform API.
type AuthService struct {
	client    loginClient
	sessions  *session.Manager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(client loginClient, sessions *session.Manager, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{client: client, sessions: sessions, validator: validate, logger: logger}
}

// Login validates the credentials locally, authenticates against the
// platform and opens a session. The role returned is derived from the
// issued token, not from the login response body.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	token, _, err := s.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	id, sess, err := s.sessions.SetToken(ctx, token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	role, _ := sess.Role()
	s.logger.Info("session opened", zap.String("email", req.Email), zap.String("role", string(role)))

	return &models.LoginResult{
		SessionID: id,
		Role:      role,
		HomePath:  guard.ResolveHome(sess),
	}, nil
}

// Identity verifies the session against the platform and returns who the
// token belongs to. Unlike the locally decoded role this is authoritative:
// a revoked token fails here even if it still decodes.
func (s *AuthService) Identity(ctx context.Context, sess session.Session) (*models.Identity, error) {
	token, err := sessionToken(sess)
	if err != nil {
		return nil, err
	}
	return s.client.Me(ctx, token)
}

// Logout clears the persisted session. Unknown session IDs are a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.ClearToken(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}
