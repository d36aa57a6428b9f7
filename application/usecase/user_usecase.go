package usecase

import (
	"context"
	"errors"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/logger"
	"github.com/taskana/taskana/pkg/apperror"
)

type UserUseCase struct {
	userRepository  outbound.UserRepository
	passwordService outbound.PasswordService
	logger          logger.Logger
}

func NewUserUseCase(
	userRepo outbound.UserRepository,
	passwordService outbound.PasswordService,
	log logger.Logger,
) inbound.UserUseCase {
	return &UserUseCase{
		userRepository:  userRepo,
		passwordService: passwordService,
		logger:          log,
	}
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "failed to list users", err, nil)
		return nil, err
	}
	return users, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, empNumber int64) (*entity.User, error) {
	user, err := uc.userRepository.FindByEmpNumber(ctx, empNumber)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to get user", err, map[string]interface{}{"empNumber": empNumber})
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update; a new password is re-hashed before it
// reaches the store.
func (uc *UserUseCase) UpdateUser(ctx context.Context, empNumber int64, update outbound.UserUpdate) (*entity.User, error) {
	if update.Password != nil {
		hash, err := uc.passwordService.HashPassword(*update.Password)
		if err != nil {
			uc.logger.Error(ctx, "failed to hash password", err, nil)
			return nil, err
		}
		update.Password = &hash
	}

	user, err := uc.userRepository.Update(ctx, empNumber, update)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to update user", err, map[string]interface{}{"empNumber": empNumber})
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, empNumber int64) error {
	if err := uc.userRepository.Delete(ctx, empNumber); err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to delete user", err, map[string]interface{}{"empNumber": empNumber})
		return err
	}
	uc.logger.Info(ctx, "user deleted", map[string]interface{}{"empNumber": empNumber})
	return nil
}
