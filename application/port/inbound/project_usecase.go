package inbound

import (
	"context"
	"time"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

type CreateProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	Manager     int64     `json:"-"`
}

type ProjectUseCase interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*entity.Project, error)
	ListProjects(ctx context.Context) ([]*entity.Project, error)
	GetProject(ctx context.Context, id int64) (*entity.Project, error)
	UpdateProject(ctx context.Context, id int64, update outbound.ProjectUpdate) (*entity.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
