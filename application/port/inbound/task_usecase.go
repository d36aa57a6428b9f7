package inbound

import (
	"context"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Important   bool   `json:"important"`
	CreatedBy   int64  `json:"-"`
}

// TaskUseCase enforces the creator-or-admin rule on update and delete, which
// is why those operations take the caller's identity.
type TaskUseCase interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entity.Task, error)
	ListTasksForUser(ctx context.Context, empNumber int64) ([]*entity.Task, error)
	GetTask(ctx context.Context, id int64) (*entity.Task, error)
	UpdateTask(ctx context.Context, id int64, update outbound.TaskUpdate, actor outbound.TokenClaims) (*entity.Task, error)
	DeleteTask(ctx context.Context, id int64, actor outbound.TokenClaims) error
}
