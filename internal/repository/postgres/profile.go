package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veridyen/consultdesk/internal/models"
)

const profileColumns = `id, auth_identity_ref, role, first_name, last_name, email, language, country_id, created_at`

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.AuthIdentityRef,
		&p.Role,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Language,
		&p.CountryID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) GetByIdentityRef(ctx context.Context, ref uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE auth_identity_ref = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by identity: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetConsultantByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE email = $1 AND role = 'consultant'`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consultant by email: %w", err)
	}
	return p, nil
}

// Provision inserts the default client profile for a first-seen identity.
// ON CONFLICT DO NOTHING followed by a re-select makes the call idempotent:
// two concurrent first requests race on the insert, lose harmlessly, and
// both read back the same row.
func (s *ProfileStore) Provision(ctx context.Context, ref uuid.UUID, email, firstName, language string) (*models.Profile, error) {
	insert := `
		INSERT INTO profiles (auth_identity_ref, role, first_name, last_name, email, language, created_at)
		VALUES ($1, 'client', $2, '', $3, $4, now())
		ON CONFLICT (auth_identity_ref) DO NOTHING`

	if _, err := s.pool.Exec(ctx, insert, ref, firstName, email, language); err != nil {
		return nil, fmt.Errorf("provision profile: %w", err)
	}

	p, err := s.GetByIdentityRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("provision profile: row missing after insert")
	}
	return p, nil
}

func (s *ProfileStore) CountryConsultant(ctx context.Context, countryID uuid.UUID) (*models.Profile, error) {
	// One active consultant per country; LIMIT 1 keeps the contract even
	// if data drifts.
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE role = 'consultant' AND country_id = $1
		ORDER BY created_at ASC
		LIMIT 1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, countryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country consultant: %w", err)
	}
	return p, nil
}

// ConsultantClients joins profiles with applications to build a
// consultant's roster for one country. The join crosses rows the
// consultant's own permissions could not read, which is why only the
// facade may call it.
func (s *ProfileStore) ConsultantClients(ctx context.Context, consultantID, countryID uuid.UUID, search string, limit, offset int) ([]models.Profile, error) {
	query := `
		SELECT DISTINCT p.id, p.auth_identity_ref, p.role, p.first_name, p.last_name, p.email, p.language, p.country_id, p.created_at
		FROM profiles p
		JOIN applications a ON a.client_id = p.id
		WHERE a.consultant_id = $1
		  AND a.service_country_id = $2
		  AND p.role = 'client'
		  AND ($3 = '' OR p.first_name ILIKE '%' || $3 || '%'
		              OR p.last_name  ILIKE '%' || $3 || '%'
		              OR p.email      ILIKE '%' || $3 || '%')
		ORDER BY p.created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := s.pool.Query(ctx, query, consultantID, countryID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consultant clients: %w", err)
	}
	defer rows.Close()

	clients := make([]models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID,
			&p.AuthIdentityRef,
			&p.Role,
			&p.FirstName,
			&p.LastName,
			&p.Email,
			&p.Language,
			&p.CountryID,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client profile: %w", err)
		}
		clients = append(clients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client profiles: %w", err)
	}

	return clients, nil
}
