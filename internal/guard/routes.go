package guard

import (
	"strings"

	"github.com/dhriti-ai/console-gateway/internal/models"
)

// Convenience rule sets shared by the route table and the router wiring.
var (
	AdminOnly = Rule{AllowedRoles: []models.Role{models.RoleAdmin}}
	// AnyWorkerOrAdmin admits every recognised role. Role "user" reaches
	// the task panel; earlier console builds disagreed on this and the
	// permissive reading won.
	AnyWorkerOrAdmin = Rule{AllowedRoles: []models.Role{
		models.RoleUser, models.RoleExpert, models.RoleVendor, models.RoleAdmin,
	}}
)

// routes maps console path prefixes to their guard rules. "/login" and "/"
// are absent on purpose: login is public and the root is a pure dispatcher.
var routes = []struct {
	prefix string
	rule   Rule
}{
	{prefix: "/dashboard", rule: AdminOnly},
	{prefix: "/users", rule: AdminOnly},
	{prefix: "/projects", rule: AdminOnly},
	{prefix: "/tasks", rule: AnyWorkerOrAdmin},
}

// RuleFor looks up the guard rule for a request path. The second return is
// false for public or unknown paths.
func RuleFor(path string) (Rule, bool) {
	for _, r := range routes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return r.rule, true
		}
	}
	return Rule{}, false
}
