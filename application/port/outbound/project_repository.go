package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/taskana/taskana/domain/entity"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrDuplicateProject = errors.New("duplicate project name")
)

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	Status      *string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) (*entity.Project, error)
	FindAll(ctx context.Context) ([]*entity.Project, error)
	FindByID(ctx context.Context, id int64) (*entity.Project, error)
	Update(ctx context.Context, id int64, update ProjectUpdate) (*entity.Project, error)
	Delete(ctx context.Context, id int64) error
}
