package models

// LoginRequest holds credentials for authenticating against the platform.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult describes an established session.
type LoginResult struct {
	SessionID string `json:"-"`
	Role      Role   `json:"role"`
	HomePath  string `json:"home_path"`
}

// Identity is the authenticated principal as reported by the platform.
type Identity struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
