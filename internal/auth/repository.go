package auth

import (
	"context"
	"database/sql"

	"campaign-server/internal/shared/database"
	"campaign-server/internal/shared/errors"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, provider, subject, email, name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Provider, user.Subject, user.Email, user.Name, user.AvatarURL, user.CreatedAt)
	if err != nil {
		return errors.WrapInternal("failed to create user", err)
	}

	return nil
}

func (r *Repository) FindBySubject(ctx context.Context, provider, subject string) (*User, error) {
	query := `
		SELECT id, provider, subject, email, name, avatar_url, created_at, last_login_at
		FROM users
		WHERE provider = $1 AND subject = $2
	`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, provider, subject))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("user not found for provider %s", provider)
		}
		return nil, errors.WrapInternal("failed to find user by subject", err)
	}

	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, provider, subject, email, name, avatar_url, created_at, last_login_at
		FROM users
		WHERE id = $1
	`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("user not found: %s", id)
		}
		return nil, errors.WrapInternal("failed to get user", err)
	}

	return user, nil
}

func (r *Repository) RecordLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.WrapInternal("failed to record login", err)
	}

	return nil
}

func (r *Repository) scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Provider,
		&user.Subject,
		&user.Email,
		&user.Name,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
