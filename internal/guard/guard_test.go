package guard

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
)

func mintToken(t *testing.T, role string) string {
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

func sessionWithRole(t *testing.T, role string) session.Session {
	t.Helper()
	return session.Session{Token: mintToken(t, role)}
}

func TestResolveNoTokenAlwaysLogin(t *testing.T) {
	rules := []Rule{
		{},
		AdminOnly,
		AnyWorkerOrAdmin,
		{AllowedRoles: []models.Role{models.RoleExpert}},
	}
	for _, rule := range rules {
		assert.Equal(t, ToLogin, Resolve(session.Session{}, rule))
	}
}

func TestResolveMalformedTokenTreatedAsAbsent(t *testing.T) {
	sess := session.Session{Token: "not-a-jwt"}
	assert.Equal(t, ToLogin, Resolve(sess, AdminOnly))
	assert.Equal(t, ToLogin, Resolve(sess, Rule{}))
}

func TestResolveRoleMismatchRedirectsByRole(t *testing.T) {
	cases := []struct {
		name string
		role string
		rule Rule
		want Decision
	}{
		{"admin misrouted to worker view goes home", "admin", Rule{AllowedRoles: []models.Role{models.RoleExpert}}, ToAdminHome},
		{"vendor on admin dashboard goes to tasks", "vendor", AdminOnly, ToWorkerHome},
		{"user on admin dashboard goes to tasks", "user", AdminOnly, ToWorkerHome},
		{"expert on admin dashboard goes to tasks", "expert", AdminOnly, ToWorkerHome},
		{"unrecognised role falls back to login", "superuser", AdminOnly, ToLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(sessionWithRole(t, tc.role), tc.rule)
			assert.Equal(t, tc.want, got)
			assert.NotEqual(t, Authorized, got)
		})
	}
}

func TestResolveAuthorized(t *testing.T) {
	// Admin is an allowed role for the task panel.
	assert.Equal(t, Authorized, Resolve(sessionWithRole(t, "admin"), AnyWorkerOrAdmin))
	assert.Equal(t, Authorized, Resolve(sessionWithRole(t, "vendor"), AnyWorkerOrAdmin))
	assert.Equal(t, Authorized, Resolve(sessionWithRole(t, "admin"), AdminOnly))
	// Empty rule admits any authenticated role.
	assert.Equal(t, Authorized, Resolve(sessionWithRole(t, "expert"), Rule{}))
}

func TestDecisionPath(t *testing.T) {
	assert.Equal(t, "", Authorized.Path())
	assert.Equal(t, LoginPath, ToLogin.Path())
	assert.Equal(t, AdminHomePath, ToAdminHome.Path())
	assert.Equal(t, WorkerHomePath, ToWorkerHome.Path())
}

func TestResolveHome(t *testing.T) {
	assert.Equal(t, LoginPath, ResolveHome(session.Session{}))
	assert.Equal(t, LoginPath, ResolveHome(session.Session{Token: "garbage"}))
	assert.Equal(t, WorkerHomePath, ResolveHome(sessionWithRole(t, "user")))
	assert.Equal(t, WorkerHomePath, ResolveHome(sessionWithRole(t, "expert")))
	assert.Equal(t, WorkerHomePath, ResolveHome(sessionWithRole(t, "vendor")))
	assert.Equal(t, AdminHomePath, ResolveHome(sessionWithRole(t, "admin")))
	assert.Equal(t, LoginPath, ResolveHome(sessionWithRole(t, "mystery")))
}

func TestRuleFor(t *testing.T) {
	rule, ok := RuleFor("/dashboard")
	require.True(t, ok)
	assert.Equal(t, AdminOnly, rule)

	rule, ok = RuleFor("/users/experts")
	require.True(t, ok)
	assert.Equal(t, AdminOnly, rule)

	rule, ok = RuleFor("/tasks")
	require.True(t, ok)
	assert.Equal(t, AnyWorkerOrAdmin, rule)

	_, ok = RuleFor("/login")
	assert.False(t, ok)

	_, ok = RuleFor("/userscape")
	assert.False(t, ok, "prefix match must not leak across path segments")
}
