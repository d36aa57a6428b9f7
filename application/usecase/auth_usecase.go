package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/service/logger"
	"github.com/taskana/taskana/pkg/apperror"
)

// ThrottleConfig holds the login-failure throttle knobs consumed by Login.
type ThrottleConfig struct {
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration
}

type AuthUseCase struct {
	userRepository  outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	rateLimit       outbound.RateLimitService
	throttle        ThrottleConfig
	logger          logger.Logger
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimit outbound.RateLimitService,
	throttle ThrottleConfig,
	log logger.Logger,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepository:  userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		rateLimit:       rateLimit,
		throttle:        throttle,
		logger:          log,
	}
}

// Login authenticates by email and password. Unknown email and wrong password
// both surface the same 401 so callers cannot enumerate accounts. On success
// the refresh-token slot is overwritten, which revokes any previous session.
func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.AuthResult, error) {
	key := "ip:" + req.ClientIP

	if req.ClientIP != "" {
		blocked, err := uc.rateLimit.IsBlocked(ctx, key)
		if err != nil {
			uc.logger.Error(ctx, "failed to check block state", err, map[string]interface{}{"ip": req.ClientIP})
		}
		if blocked {
			uc.logger.Warn(ctx, "login attempt from blocked IP", map[string]interface{}{"ip": req.ClientIP})
			return nil, apperror.Unauthorized("Too many failed login attempts")
		}

		allowed, err := uc.rateLimit.CheckLimit(ctx, key, uc.throttle.Attempts, uc.throttle.Window)
		if err != nil {
			// The throttle fails open: a limiter outage must not lock out
			// valid credentials.
			uc.logger.Error(ctx, "failed to check rate limit", err, map[string]interface{}{"ip": req.ClientIP})
			allowed = true
		}
		if !allowed {
			if err := uc.rateLimit.Block(ctx, key, uc.throttle.BlockDuration); err != nil {
				uc.logger.Error(ctx, "failed to block IP", err, map[string]interface{}{"ip": req.ClientIP})
			}
			return nil, apperror.Unauthorized("Too many failed login attempts")
		}
	}

	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			uc.recordFailure(ctx, key)
			return nil, apperror.Unauthorized("Invalid email/password")
		}
		uc.logger.Error(ctx, "failed to find user by email", err, map[string]interface{}{"email": req.Email})
		return nil, err
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.Password)
	if err != nil {
		uc.logger.Error(ctx, "password verification error", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, err
	}
	if !valid {
		uc.recordFailure(ctx, key)
		uc.logger.Warn(ctx, "login failed", map[string]interface{}{"email": req.Email})
		return nil, apperror.Unauthorized("Invalid email/password")
	}

	result, err := uc.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(ctx, "user logged in", map[string]interface{}{"empNumber": user.EmpNumber})
	return result, nil
}

// Register creates a user. The admin flag comes from the route, never from
// the request body: self-registration forces it false, the admin-only
// create-user route may set it.
func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.AuthResult, error) {
	_, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Duplicate email: %s", req.Email))
	}
	if !errors.Is(err, outbound.ErrUserNotFound) {
		uc.logger.Error(ctx, "failed duplicate check", err, map[string]interface{}{"email": req.Email})
		return nil, err
	}

	hash, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		uc.logger.Error(ctx, "failed to hash password", err, nil)
		return nil, err
	}

	user, err := uc.userRepository.Create(ctx, &entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		EmpRole:   req.EmpRole,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, outbound.ErrDuplicateEmail) {
			return nil, apperror.BadRequest(fmt.Sprintf("Duplicate email: %s", req.Email))
		}
		uc.logger.Error(ctx, "failed to create user", err, map[string]interface{}{"email": req.Email})
		return nil, err
	}

	result, err := uc.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(ctx, "user registered", map[string]interface{}{"empNumber": user.EmpNumber})
	return result, nil
}

// Refresh mints a new access token from a refresh token. The store is queried
// by token value; a token that decodes fine but whose empNumber disagrees with
// the slot owner is treated as untrustworthy (403), while a token absent from
// every slot is a 404.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*inbound.RefreshResult, error) {
	user, err := uc.userRepository.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return nil, apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to find user by refresh token", err, nil)
		return nil, err
	}

	claims, err := uc.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warn(ctx, "refresh token failed verification", map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, apperror.Forbidden("")
	}
	if claims.EmpNumber != user.EmpNumber {
		uc.logger.Warn(ctx, "refresh token does not match its record", map[string]interface{}{
			"empNumber": user.EmpNumber,
			"claimed":   claims.EmpNumber,
		})
		return nil, apperror.Forbidden("")
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		EmpNumber: user.EmpNumber,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	})
	if err != nil {
		uc.logger.Error(ctx, "failed to generate access token", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, mapTokenError(err)
	}

	return &inbound.RefreshResult{User: user, AccessToken: accessToken}, nil
}

// Logout clears the slot belonging to the presented refresh token, revoking
// it immediately regardless of its cryptographic expiry.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) (int64, error) {
	user, err := uc.userRepository.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return 0, apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to find user by refresh token", err, nil)
		return 0, err
	}

	if err := uc.userRepository.ClearRefreshToken(ctx, user.EmpNumber); err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return 0, apperror.NotFound("No user found!")
		}
		uc.logger.Error(ctx, "failed to clear refresh token", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return 0, err
	}

	uc.logger.Info(ctx, "user logged out", map[string]interface{}{"empNumber": user.EmpNumber})
	return user.EmpNumber, nil
}

// issueSession mints both tokens and persists the refresh token into the
// user's single slot. Two concurrent logins both succeed; the last slot write
// wins and the earlier refresh token is dead on arrival.
func (uc *AuthUseCase) issueSession(ctx context.Context, user *entity.User) (*inbound.AuthResult, error) {
	claims := outbound.TokenClaims{
		EmpNumber: user.EmpNumber,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(claims)
	if err != nil {
		uc.logger.Error(ctx, "failed to generate access token", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, mapTokenError(err)
	}
	refreshToken, err := uc.tokenService.GenerateRefreshToken(claims)
	if err != nil {
		uc.logger.Error(ctx, "failed to generate refresh token", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, mapTokenError(err)
	}

	if err := uc.userRepository.SetRefreshToken(ctx, user.EmpNumber, refreshToken); err != nil {
		uc.logger.Error(ctx, "failed to persist refresh token", err, map[string]interface{}{"empNumber": user.EmpNumber})
		return nil, err
	}

	return &inbound.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// mapTokenError turns a claim-schema rejection into a 400; anything else
// stays opaque and surfaces as a 500.
func mapTokenError(err error) error {
	if errors.Is(err, outbound.ErrInvalidClaims) {
		return apperror.BadRequest(err.Error())
	}
	return err
}

func (uc *AuthUseCase) recordFailure(ctx context.Context, key string) {
	if uc.throttle.Attempts <= 0 {
		return
	}
	if err := uc.rateLimit.Increment(ctx, key, uc.throttle.Window); err != nil {
		uc.logger.Error(ctx, "failed to record login failure", err, nil)
	}
}
