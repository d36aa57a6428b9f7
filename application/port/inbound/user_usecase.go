package inbound

import (
	"context"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

type UserUseCase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUser(ctx context.Context, empNumber int64) (*entity.User, error)
	UpdateUser(ctx context.Context, empNumber int64, update outbound.UserUpdate) (*entity.User, error)
	DeleteUser(ctx context.Context, empNumber int64) error
}
