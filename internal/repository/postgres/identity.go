package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veridyen/consultdesk/internal/models"
)

type IdentityStore struct {
	pool *pgxpool.Pool
}

func NewIdentityStore(pool *pgxpool.Pool) *IdentityStore {
	return &IdentityStore{pool: pool}
}

func (s *IdentityStore) Create(ctx context.Context, email, passwordHash string) (*models.AuthIdentity, error) {
	query := `
		INSERT INTO auth_identities (email, password_hash, created_at)
		VALUES ($1, $2, now())
		RETURNING id, email, password_hash, created_at`

	var ident models.AuthIdentity
	err := s.pool.QueryRow(ctx, query, email, passwordHash).Scan(
		&ident.ID,
		&ident.Email,
		&ident.PasswordHash,
		&ident.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return &ident, nil
}

// GetByEmail looks up an identity by email. Used for login.
func (s *IdentityStore) GetByEmail(ctx context.Context, email string) (*models.AuthIdentity, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM auth_identities
		WHERE email = $1`

	var ident models.AuthIdentity
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&ident.ID,
		&ident.Email,
		&ident.PasswordHash,
		&ident.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}
	return &ident, nil
}
