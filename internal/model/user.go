package model

import "time"

// Role determines which routes a logged-in account may use.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
)

// LoginType records which path produced a session.
type LoginType string

const (
	LoginTypeLocal    LoginType = "local"
	LoginTypeExternal LoginType = "external"
)

// User is a login account. Replaces the fixed credential table of the
// original dashboard with bcrypt-hashed rows.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the view of an authenticated account embedded in API responses.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LoginType LoginType `json:"login_type"`
}

// LoginRequest is the payload for local authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// ExternalLoginRequest carries a provider access token obtained by the client.
type ExternalLoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}
