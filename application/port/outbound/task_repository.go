package outbound

import (
	"context"
	"errors"

	"github.com/taskana/taskana/domain/entity"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrDuplicateTask = errors.New("duplicate task title")
)

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Important   *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	FindByCreator(ctx context.Context, empNumber int64) ([]*entity.Task, error)
	FindByID(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, id int64, update TaskUpdate) (*entity.Task, error)
	Delete(ctx context.Context, id int64) error
}
