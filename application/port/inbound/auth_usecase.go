package inbound

import (
	"context"

	"github.com/taskana/taskana/domain/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

// RegisterRequest creates a new user. IsAdmin is never taken from the request
// body on self-registration; the admin-only create-user route may set it.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EmpRole   string `json:"empRole"`
	IsAdmin   bool   `json:"-"`
}

// AuthResult is the outcome of Login and Register: both token kinds plus the
// profile (password hash already stripped by entity JSON rules).
type AuthResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RefreshResult carries the freshly minted access token only; the refresh
// token and its stored slot are untouched by a refresh.
type RefreshResult struct {
	User        *entity.User
	AccessToken string
}

type AuthUseCase interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	// Logout clears the owning user's refresh-token slot and returns the
	// employee number it belonged to.
	Logout(ctx context.Context, refreshToken string) (int64, error)
}
