package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/logger"
	"github.com/taskana/taskana/pkg/apperror"
)

type ProjectUseCase struct {
	projectRepository outbound.ProjectRepository
	logger            logger.Logger
}

func NewProjectUseCase(projectRepo outbound.ProjectRepository, log logger.Logger) inbound.ProjectUseCase {
	return &ProjectUseCase{projectRepository: projectRepo, logger: log}
}

func (uc *ProjectUseCase) CreateProject(ctx context.Context, req inbound.CreateProjectRequest) (*entity.Project, error) {
	if req.Status == "" {
		req.Status = "Not started"
	}
	project, err := uc.projectRepository.Create(ctx, &entity.Project{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      req.Status,
		Manager:     req.Manager,
	})
	if err != nil {
		if errors.Is(err, outbound.ErrDuplicateProject) {
			return nil, apperror.BadRequest(fmt.Sprintf("Duplicate project: %s", req.Name))
		}
		uc.logger.Error(ctx, "failed to create project", err, map[string]interface{}{"name": req.Name})
		return nil, err
	}
	uc.logger.Info(ctx, "project created", map[string]interface{}{"id": project.ID})
	return project, nil
}

func (uc *ProjectUseCase) ListProjects(ctx context.Context) ([]*entity.Project, error) {
	projects, err := uc.projectRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "failed to list projects", err, nil)
		return nil, err
	}
	return projects, nil
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, id int64) (*entity.Project, error) {
	project, err := uc.projectRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return nil, apperror.NotFound("No project found!")
		}
		uc.logger.Error(ctx, "failed to get project", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUseCase) UpdateProject(ctx context.Context, id int64, update outbound.ProjectUpdate) (*entity.Project, error) {
	project, err := uc.projectRepository.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return nil, apperror.NotFound("No project found!")
		}
		uc.logger.Error(ctx, "failed to update project", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUseCase) DeleteProject(ctx context.Context, id int64) error {
	if err := uc.projectRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrProjectNotFound) {
			return apperror.NotFound("No project found!")
		}
		uc.logger.Error(ctx, "failed to delete project", err, map[string]interface{}{"id": id})
		return err
	}
	return nil
}
