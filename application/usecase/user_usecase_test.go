package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/password"
)

func TestUserUseCase_UpdateRehashesPassword(t *testing.T) {
	ctx := context.Background()
	users := newMockUserRepository()
	passwords := password.NewBcryptPasswordService(4)
	uc := NewUserUseCase(users, passwords, testLogger())

	seeded, err := users.Create(ctx, &entity.User{Email: "jane@example.com", Password: "old-hash"})
	require.NoError(t, err)

	newPassword := "brand-new-secret"
	updated, err := uc.UpdateUser(ctx, seeded.EmpNumber, outbound.UserUpdate{Password: &newPassword})
	require.NoError(t, err)

	// The stored value is a hash of the new password, not the plaintext.
	assert.NotEqual(t, "brand-new-secret", updated.Password)
	assert.NotEqual(t, "old-hash", updated.Password)

	ok, err := passwords.VerifyPassword("brand-new-secret", updated.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserUseCase_MissingUser(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(newMockUserRepository(), password.NewBcryptPasswordService(4), testLogger())

	_, err := uc.GetUser(ctx, 404)
	assert.Equal(t, 404, statusOf(t, err))
	assert.Equal(t, "No user found!", err.Error())

	err = uc.DeleteUser(ctx, 404)
	assert.Equal(t, 404, statusOf(t, err))
}
