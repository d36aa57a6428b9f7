package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
)

const uniqueViolation = "23505"

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) outbound.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmpNumber(ctx context.Context, empNumber int64) (*entity.User, error) {
	query := `
		SELECT emp_number, first_name, last_name, email, password, emp_role, is_admin, refresh_token
		FROM users
		WHERE emp_number = $1
	`

	var user entity.User
	err := r.db.QueryRowContext(ctx, query, empNumber).Scan(
		&user.EmpNumber,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.EmpRole,
		&user.IsAdmin,
		&user.RefreshToken,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by emp number: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT emp_number, first_name, last_name, email, password, emp_role, is_admin, refresh_token
		FROM users
		WHERE email = $1
	`

	var user entity.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.EmpNumber,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.EmpRole,
		&user.IsAdmin,
		&user.RefreshToken,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

// FindByRefreshToken looks a user up by the token stored in their session
// slot. Exactly zero or one row can match because the slot holds one token.
func (r *userRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	query := `
		SELECT emp_number, first_name, last_name, email, password, emp_role, is_admin, refresh_token
		FROM users
		WHERE refresh_token = $1
	`

	var user entity.User
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&user.EmpNumber,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.EmpRole,
		&user.IsAdmin,
		&user.RefreshToken,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT emp_number, first_name, last_name, email, password, emp_role, is_admin, refresh_token
		FROM users
		ORDER BY emp_number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.EmpNumber,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Password,
			&user.EmpRole,
			&user.IsAdmin,
			&user.RefreshToken,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password, emp_role, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING emp_number
	`

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.EmpRole,
		user.IsAdmin,
	).Scan(&user.EmpNumber)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, empNumber int64, update outbound.UserUpdate) (*entity.User, error) {
	builder := newUpdateBuilder()
	if update.FirstName != nil {
		builder.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		builder.Set("last_name", *update.LastName)
	}
	if update.Email != nil {
		builder.Set("email", *update.Email)
	}
	if update.Password != nil {
		builder.Set("password", *update.Password)
	}
	if update.EmpRole != nil {
		builder.Set("emp_role", *update.EmpRole)
	}
	if update.IsAdmin != nil {
		builder.Set("is_admin", *update.IsAdmin)
	}

	if builder.Empty() {
		return r.FindByEmpNumber(ctx, empNumber)
	}

	query, args := builder.Build("users", "emp_number", empNumber)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, outbound.ErrUserNotFound
	}

	return r.FindByEmpNumber(ctx, empNumber)
}

func (r *userRepository) Delete(ctx context.Context, empNumber int64) error {
	query := `DELETE FROM users WHERE emp_number = $1`

	result, err := r.db.ExecContext(ctx, query, empNumber)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrUserNotFound
	}

	return nil
}

// SetRefreshToken overwrites the user's session slot. A login while another
// session is live replaces the old token, which can no longer refresh.
func (r *userRepository) SetRefreshToken(ctx context.Context, empNumber int64, token string) error {
	query := `UPDATE users SET refresh_token = $2 WHERE emp_number = $1`

	result, err := r.db.ExecContext(ctx, query, empNumber, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, empNumber int64) error {
	query := `UPDATE users SET refresh_token = NULL WHERE emp_number = $1`

	result, err := r.db.ExecContext(ctx, query, empNumber)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrUserNotFound
	}

	return nil
}
