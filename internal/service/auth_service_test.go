package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
)

type fakeLoginClient struct {
	token string
	role  models.Role
	err   error
	calls int
}

func (f *fakeLoginClient) Login(context.Context, string, string) (string, models.Role, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.token, f.role, nil
}

func (f *fakeLoginClient) Me(context.Context, string) (*models.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Identity{Email: "user@test.com", Role: f.role}, nil
}

func mintRoleToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user@test.com",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newAuthFixture(client *fakeLoginClient) (*AuthService, *session.Manager) {
	mgr := session.NewManager(session.NewMemoryStore(), time.Hour)
	return NewAuthService(client, mgr, nil, nil), mgr
}

func TestLoginStoresToken(t *testing.T) {
	client := &fakeLoginClient{token: "abc"}
	svc, mgr := newAuthFixture(client)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "user@test.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionID)
	assert.Equal(t, 1, client.calls)

	sess, ok := mgr.Session(context.Background(), result.SessionID)
	require.True(t, ok)
	assert.Equal(t, "abc", sess.Token)
}

func TestLoginDerivesRoleFromToken(t *testing.T) {
	client := &fakeLoginClient{token: mintRoleToken(t, "admin")}
	svc, _ := newAuthFixture(client)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@test.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Equal(t, "/dashboard", result.HomePath)
}

func TestLoginWorkerHomePath(t *testing.T) {
	client := &fakeLoginClient{token: mintRoleToken(t, "vendor")}
	svc, _ := newAuthFixture(client)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "vendor@test.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, result.Role)
	assert.Equal(t, "/tasks", result.HomePath)
}

func TestLoginValidationBlocksUpstreamCall(t *testing.T) {
	cases := []models.LoginRequest{
		{Email: "", Password: "secret1"},
		{Email: "not-an-email", Password: "secret1"},
		{Email: "user@test.com", Password: "short"},
	}
	for _, req := range cases {
		client := &fakeLoginClient{token: "abc"}
		svc, _ := newAuthFixture(client)

		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)

		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		assert.Equal(t, 0, client.calls, "validation failures must not reach the platform")
	}
}

func TestLoginUpstreamErrorPropagates(t *testing.T) {
	client := &fakeLoginClient{err: appErrors.Clone(appErrors.ErrValidation, "Invalid credentials")}
	svc, _ := newAuthFixture(client)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "user@test.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestIdentityRequiresToken(t *testing.T) {
	svc, _ := newAuthFixture(&fakeLoginClient{})

	_, err := svc.Identity(context.Background(), session.Session{})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestIdentityVerifiesUpstream(t *testing.T) {
	svc, _ := newAuthFixture(&fakeLoginClient{role: models.RoleExpert})

	identity, err := svc.Identity(context.Background(), session.Session{Token: "abc"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleExpert, identity.Role)
	assert.Equal(t, "user@test.com", identity.Email)
}

func TestLogoutClearsSession(t *testing.T) {
	client := &fakeLoginClient{token: "abc"}
	svc, mgr := newAuthFixture(client)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "user@test.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.SessionID))
	_, ok := mgr.Session(context.Background(), result.SessionID)
	assert.False(t, ok)

	// Logging out an unknown session is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), "missing"))
}
