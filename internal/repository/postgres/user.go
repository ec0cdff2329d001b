package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, bio, avatar_url, credits, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	u.CreatedOn = now
	u.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Bio, u.AvatarURL, u.Credits, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, COALESCE(bio, ''), COALESCE(avatar_url, ''), credits, created_on, updated_on
	          FROM users WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.AvatarURL, &u.Credits, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, COALESCE(bio, ''), COALESCE(avatar_url, ''), credits, created_on, updated_on
	          FROM users WHERE LOWER(email) = LOWER($1)`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.AvatarURL, &u.Credits, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	// Credits are deliberately absent here: balances move only through the
	// ledger repository.
	query := `UPDATE users SET email=$1, name=$2, bio=$3, avatar_url=$4, updated_on=$5 WHERE id=$6`
	now := time.Now().Format("2006-01-02")
	u.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Bio, u.AvatarURL, u.UpdatedOn, u.ID)
	return err
}
