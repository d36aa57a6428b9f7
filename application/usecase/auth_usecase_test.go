package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/infrastructure/service/jwt"
	"github.com/taskana/taskana/infrastructure/service/password"
	"github.com/taskana/taskana/pkg/apperror"
)

type authFixture struct {
	auth     inbound.AuthUseCase
	users    *mockUserRepository
	tokens   *jwt.JWTService
	limiter  *mockRateLimitService
	throttle ThrottleConfig
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newMockUserRepository()
	tokens, err := jwt.NewJWTService("test-access-secret", "test-refresh-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	limiter := &mockRateLimitService{}
	throttle := ThrottleConfig{Attempts: 5, Window: time.Minute, BlockDuration: time.Minute}

	return &authFixture{
		auth:     NewAuthUseCase(users, tokens, password.NewBcryptPasswordService(4), limiter, throttle, testLogger()),
		users:    users,
		tokens:   tokens,
		limiter:  limiter,
		throttle: throttle,
	}
}

func registerRequest(email string) inbound.RegisterRequest {
	return inbound.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  "secret123",
		EmpRole:   "Engineer",
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperror.FromError(err).Status
}

func TestAuthUseCase_RegisterThenLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.User.EmpNumber)
	assert.False(t, registered.User.IsAdmin)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	result, err := f.auth.Login(ctx, inbound.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "secret123", result.User.Password)

	// Access-token claims mirror the stored profile.
	claims, err := f.tokens.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.EmpNumber, claims.EmpNumber)
	assert.Equal(t, result.User.Email, claims.Email)
	assert.Equal(t, result.User.IsAdmin, claims.IsAdmin)
}

func TestAuthUseCase_LoginFailuresAreUniform(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	_, unknownErr := f.auth.Login(ctx, inbound.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, wrongErr := f.auth.Login(ctx, inbound.LoginRequest{Email: "jane@example.com", Password: "wrong"})

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, 401, statusOf(t, unknownErr))
	assert.Equal(t, 401, statusOf(t, wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthUseCase_DuplicateRegister(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, registerRequest("jane@example.com"))
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "Duplicate email: jane@example.com")
}

func TestAuthUseCase_ReloginOverwritesSlot(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	// Tokens embed an issued-at second; step the clock so the second token
	// differs from the first.
	base := time.Now()
	f.tokens.SetTimeFunc(func() time.Time { return base.Add(time.Second) })

	second, err := f.auth.Login(ctx, inbound.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The replaced token no longer maps to any slot.
	_, err = f.auth.Refresh(ctx, first.RefreshToken)
	assert.Equal(t, 404, statusOf(t, err))

	_, err = f.auth.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthUseCase_RefreshUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Refresh(context.Background(), "never-issued")
	assert.Equal(t, 404, statusOf(t, err))
	assert.Equal(t, "No user found!", err.Error())
}

func TestAuthUseCase_RefreshRejectsUnverifiableSlotToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	// A slot can hold a value that is not a valid signed token (e.g. written
	// by an older deployment). Lookup succeeds, verification must not.
	require.NoError(t, f.users.SetRefreshToken(ctx, result.User.EmpNumber, "tampered-value"))

	_, err = f.auth.Refresh(ctx, "tampered-value")
	assert.Equal(t, 403, statusOf(t, err))
}

func TestAuthUseCase_RefreshRejectsMismatchedOwner(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	jane, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)
	bob, err := f.auth.Register(ctx, registerRequest("bob@example.com"))
	require.NoError(t, err)

	// Bob's valid token planted in Jane's slot decodes fine but names the
	// wrong owner.
	require.NoError(t, f.users.SetRefreshToken(ctx, jane.User.EmpNumber, bob.RefreshToken))
	require.NoError(t, f.users.ClearRefreshToken(ctx, bob.User.EmpNumber))

	_, err = f.auth.Refresh(ctx, bob.RefreshToken)
	assert.Equal(t, 403, statusOf(t, err))
}

func TestAuthUseCase_LogoutRevokesRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	empNumber, err := f.auth.Logout(ctx, result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.EmpNumber, empNumber)

	// A cryptographically valid but revoked token is gone from every slot.
	_, err = f.auth.Refresh(ctx, result.RefreshToken)
	assert.Equal(t, 404, statusOf(t, err))

	// Logging out twice with the same token is a 404 as well.
	_, err = f.auth.Logout(ctx, result.RefreshToken)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestAuthUseCase_BlockedIPCannotLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	f.limiter.blocked = true

	_, err = f.auth.Login(ctx, inbound.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		ClientIP: "10.0.0.1",
	})
	assert.Equal(t, 401, statusOf(t, err))
	assert.Contains(t, err.Error(), "Too many failed login attempts")
}

func TestAuthUseCase_LimiterOutageDoesNotBlockLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	// An unreachable throttle backend must not turn correct credentials into
	// a lockout.
	f.limiter.checkErr = errors.New("redis: connection refused")

	result, err := f.auth.Login(ctx, inbound.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		ClientIP: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Zero(t, f.limiter.blocks)
}

func TestAuthUseCase_FailedLoginsAreCounted(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, inbound.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
		ClientIP: "10.0.0.1",
	})
	require.Error(t, err)
	assert.Equal(t, 1, f.limiter.increments)

	// Over the limit the IP gets blocked outright.
	f.limiter.overLimit = true
	_, err = f.auth.Login(ctx, inbound.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		ClientIP: "10.0.0.1",
	})
	assert.Equal(t, 401, statusOf(t, err))
	assert.Equal(t, 1, f.limiter.blocks)
}

func TestAuthUseCase_FullSessionLifecycle(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	base := time.Now()
	f.tokens.SetTimeFunc(func() time.Time { return base.Add(time.Second) })

	loggedIn, err := f.auth.Login(ctx, inbound.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEqual(t, registered.RefreshToken, loggedIn.RefreshToken)

	refreshed, err := f.auth.Refresh(ctx, loggedIn.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, loggedIn.User.EmpNumber, refreshed.User.EmpNumber)

	claims, err := f.tokens.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, loggedIn.User.EmpNumber, claims.EmpNumber)

	_, err = f.auth.Logout(ctx, loggedIn.RefreshToken)
	require.NoError(t, err)

	_, err = f.auth.Refresh(ctx, loggedIn.RefreshToken)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestAuthUseCase_AdminFlagComesFromRoute(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	req := registerRequest("root@example.com")
	req.IsAdmin = true

	result, err := f.auth.Register(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)

	claims, err := f.tokens.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

var _ outbound.RateLimitService = (*mockRateLimitService)(nil)
