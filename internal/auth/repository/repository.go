// Package repository persists owner accounts and refresh tokens.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guesthouse_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Owner is a registered guesthouse owner account.
type Owner struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines persistence operations for owner accounts.
type Repository interface {
	CreateOwner(ctx context.Context, name, email, passwordHash string) (Owner, error)
	GetOwnerByEmail(ctx context.Context, email string) (Owner, error)
	GetOwnerByID(ctx context.Context, id uuid.UUID) (Owner, error)
	CreateRefreshToken(ctx context.Context, ownerID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, ownerID uuid.UUID) error
}

// Repo is the pgx-backed implementation of Repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const ownerColumns = `id, name, email, password_hash, created_at, updated_at`

// CreateOwner inserts a new owner account.
func (r *Repo) CreateOwner(ctx context.Context, name, email, passwordHash string) (Owner, error) {
	query := `
		INSERT INTO owners (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + ownerColumns

	o, err := scanOwner(r.pool.QueryRow(ctx, query, name, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Owner{}, apperr.Conflict("email already registered")
		}
		return Owner{}, fmt.Errorf("create owner: %w", err)
	}
	return o, nil
}

// GetOwnerByEmail fetches an owner by email address.
func (r *Repo) GetOwnerByEmail(ctx context.Context, email string) (Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE email = $1`

	o, err := scanOwner(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Owner{}, apperr.NotFound("owner not found")
		}
		return Owner{}, fmt.Errorf("get owner by email: %w", err)
	}
	return o, nil
}

// GetOwnerByID fetches an owner by id.
func (r *Repo) GetOwnerByID(ctx context.Context, id uuid.UUID) (Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	o, err := scanOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Owner{}, apperr.NotFound("owner not found")
		}
		return Owner{}, fmt.Errorf("get owner by id: %w", err)
	}
	return o, nil
}

// CreateRefreshToken stores a hashed refresh token.
func (r *Repo) CreateRefreshToken(ctx context.Context, ownerID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (owner_id, token_hash, expires_at)
		VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, ownerID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken resolves a hashed refresh token to its owner and expiry.
func (r *Repo) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	query := `SELECT owner_id, expires_at FROM refresh_tokens WHERE token_hash = $1`

	var (
		ownerID   uuid.UUID
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&ownerID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
		}
		return uuid.Nil, time.Time{}, fmt.Errorf("get refresh token: %w", err)
	}
	return ownerID, expiresAt, nil
}

// RevokeRefreshToken deletes a hashed refresh token.
func (r *Repo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllRefreshTokens deletes every refresh token of an owner.
func (r *Repo) RevokeAllRefreshTokens(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}

func scanOwner(row pgx.Row) (Owner, error) {
	var o Owner
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Owner{}, err
	}
	return o, nil
}
