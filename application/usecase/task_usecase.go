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

type TaskUseCase struct {
	taskRepository outbound.TaskRepository
	logger         logger.Logger
}

func NewTaskUseCase(taskRepo outbound.TaskRepository, log logger.Logger) inbound.TaskUseCase {
	return &TaskUseCase{taskRepository: taskRepo, logger: log}
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, req inbound.CreateTaskRequest) (*entity.Task, error) {
	task, err := uc.taskRepository.Create(ctx, &entity.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      "To do",
		Important:   req.Important,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, outbound.ErrDuplicateTask) {
			return nil, apperror.BadRequest(fmt.Sprintf("Duplicate task: %s", req.Title))
		}
		uc.logger.Error(ctx, "failed to create task", err, map[string]interface{}{"title": req.Title})
		return nil, err
	}
	return task, nil
}

func (uc *TaskUseCase) ListTasksForUser(ctx context.Context, empNumber int64) ([]*entity.Task, error) {
	tasks, err := uc.taskRepository.FindByCreator(ctx, empNumber)
	if err != nil {
		uc.logger.Error(ctx, "failed to list tasks", err, map[string]interface{}{"empNumber": empNumber})
		return nil, err
	}
	return tasks, nil
}

func (uc *TaskUseCase) GetTask(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := uc.taskRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return nil, apperror.NotFound("No task found!")
		}
		uc.logger.Error(ctx, "failed to get task", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return task, nil
}

// UpdateTask lets the creator or an admin modify a task; the allowed identity
// depends on the stored row, so the check happens here rather than in a guard.
func (uc *TaskUseCase) UpdateTask(ctx context.Context, id int64, update outbound.TaskUpdate, actor outbound.TokenClaims) (*entity.Task, error) {
	found, err := uc.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && found.CreatedBy != actor.EmpNumber {
		return nil, apperror.Unauthorized("")
	}

	task, err := uc.taskRepository.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return nil, apperror.NotFound("No task found!")
		}
		uc.logger.Error(ctx, "failed to update task", err, map[string]interface{}{"id": id})
		return nil, err
	}
	return task, nil
}

func (uc *TaskUseCase) DeleteTask(ctx context.Context, id int64, actor outbound.TokenClaims) error {
	found, err := uc.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && found.CreatedBy != actor.EmpNumber {
		return apperror.Unauthorized("")
	}

	if err := uc.taskRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrTaskNotFound) {
			return apperror.NotFound("No task found!")
		}
		uc.logger.Error(ctx, "failed to delete task", err, map[string]interface{}{"id": id})
		return err
	}
	return nil
}
