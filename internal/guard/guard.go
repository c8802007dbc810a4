// Package guard decides whether a console route is reachable for the
// current session and where to send the user otherwise. Resolution is a
// pure function of session state: no I/O, no side effects.
package guard

import (
	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/session"
)

// Console route anchors.
const (
	LoginPath      = "/login"
	AdminHomePath  = "/dashboard"
	WorkerHomePath = "/tasks"
)

// Decision is the outcome of evaluating a protected route.
type Decision int

const (
	// Authorized renders the requested view.
	Authorized Decision = iota
	// ToLogin redirects to the login view.
	ToLogin
	// ToAdminHome redirects a misrouted admin to their home view.
	ToAdminHome
	// ToWorkerHome redirects a misrouted worker to the task panel.
	ToWorkerHome
)

// Path returns the redirect target for a decision, or "" for Authorized.
func (d Decision) Path() string {
	switch d {
	case ToLogin:
		return LoginPath
	case ToAdminHome:
		return AdminHomePath
	case ToWorkerHome:
		return WorkerHomePath
	default:
		return ""
	}
}

// Rule gates a route. An empty AllowedRoles set admits any authenticated
// role.
type Rule struct {
	AllowedRoles []models.Role
}

// Allows reports whether the role satisfies the rule.
func (r Rule) Allows(role models.Role) bool {
	if len(r.AllowedRoles) == 0 {
		return true
	}
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Resolve evaluates a protected route for the session.
//
// No token always resolves to login, independent of the rule. A token whose
// role cannot be derived is treated the same as no token. A role outside the
// rule's set is sent to its own home view; unrecognised roles fall back to
// login rather than looping between views.
func Resolve(sess session.Session, rule Rule) Decision {
	if !sess.Authenticated() {
		return ToLogin
	}

	role, ok := sess.Role()
	if !ok {
		return ToLogin
	}

	if rule.Allows(role) {
		return Authorized
	}

	switch {
	case role == models.RoleAdmin:
		return ToAdminHome
	case role.Worker():
		return ToWorkerHome
	default:
		return ToLogin
	}
}

// ResolveHome dispatches the root path "/" to the session's starting view.
// The root is a pure redirect, never a rendered view.
func ResolveHome(sess session.Session) string {
	if !sess.Authenticated() {
		return LoginPath
	}

	role, ok := sess.Role()
	if !ok {
		return LoginPath
	}

	switch {
	case role.Worker():
		return WorkerHomePath
	case role == models.RoleAdmin:
		return AdminHomePath
	default:
		return LoginPath
	}
}
