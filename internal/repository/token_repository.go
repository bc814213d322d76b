package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// TokenRepo stores refresh tokens. Only the SHA-256 hash of a token is
// ever persisted; lookups therefore always go through the hash.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a new TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh inserts a refresh token hash for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt.UTC())
	return err
}

// GetActiveByHash returns the token row matching the hash when it has
// not expired or been revoked. Returns ErrNotFound otherwise.
func (r *TokenRepo) GetActiveByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
	           FROM refresh_tokens
	           WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`
	var t model.RefreshToken
	var revoked sql.NullTime
	err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &revoked, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if revoked.Valid {
		rt := revoked.Time
		t.RevokedAt = &rt
	}
	return &t, nil
}

// Revoke marks a token as revoked by its hash. Revoking an unknown or
// already revoked token returns ErrNotFound so callers can report it.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	           WHERE token_hash = ? AND revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, tokenHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
