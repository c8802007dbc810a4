package models

// Role represents the platform roles gating console routes.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleExpert Role = "expert"
	RoleVendor Role = "vendor"
)

// workerRoles are the roles whose home view is the tasks panel.
var workerRoles = map[Role]struct{}{
	RoleUser:   {},
	RoleExpert: {},
	RoleVendor: {},
}

// Known reports whether the role is one the console recognises.
func (r Role) Known() bool {
	return r == RoleAdmin || r.Worker()
}

// Worker reports whether the role belongs to the worker-type group.
func (r Role) Worker() bool {
	_, ok := workerRoles[r]
	return ok
}
