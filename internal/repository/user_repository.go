package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB *db.Postgres
}

const userColumns = `id, name, username, password_hash, role, email, phone, active, login_attempts, locked, last_login, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role, &u.Email, &u.Phone,
		&u.Active, &u.LoginAttempts, &u.Locked, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
	return scanUser(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

type CreateUserParams struct {
	Name         string
	Username     string
	PasswordHash string
	Role         domain.UserRole
	Email        string
	Phone        string
}

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (name, username, password_hash, role, email, phone)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+userColumns, p.Name, p.Username, p.PasswordHash, p.Role, p.Email, p.Phone)
	u, err := scanUser(row)
	if err != nil && db.IsUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	return u, err
}

// RecordFailedLogin bumps the attempt counter and locks the account once
// attempts reach the threshold. Returns the new counter and lock state.
func (r UserRepository) RecordFailedLogin(ctx context.Context, id int64, lockAfter int) (attempts int, locked bool, err error) {
	err = r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET login_attempts = login_attempts + 1,
		    locked = (login_attempts + 1 >= $2)
		WHERE id=$1
		RETURNING login_attempts, locked
	`, id, lockAfter).Scan(&attempts, &locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, ErrNotFound
	}
	return attempts, locked, err
}

// RecordSuccessfulLogin resets the attempt counter and stamps last_login.
func (r UserRepository) RecordSuccessfulLogin(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE users
		SET login_attempts = 0, last_login = now()
		WHERE id=$1
	`, id)
	return err
}
