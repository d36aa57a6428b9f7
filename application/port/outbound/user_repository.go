package outbound

import (
	"context"
	"errors"

	"github.com/taskana/taskana/domain/entity"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	EmpRole   *string
	IsAdmin   *bool
}

// UserRepository persists user identities and the single refresh-token slot
// per user. Lookups return ErrUserNotFound when no matching row exists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmpNumber(ctx context.Context, empNumber int64) (*entity.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, empNumber int64, update UserUpdate) (*entity.User, error)
	Delete(ctx context.Context, empNumber int64) error
	SetRefreshToken(ctx context.Context, empNumber int64, token string) error
	ClearRefreshToken(ctx context.Context, empNumber int64) error
}
