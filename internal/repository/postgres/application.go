package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/repository"
)

const applicationColumns = `id, client_id, consultant_id, service_type, service_country_id, total_amount::text, currency, status, source_type, priority_level, created_at`

type ApplicationStore struct {
	pool *pgxpool.Pool
}

func NewApplicationStore(pool *pgxpool.Pool) *ApplicationStore {
	return &ApplicationStore{pool: pool}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ConsultantID,
		&a.ServiceType,
		&a.ServiceCountryID,
		&a.TotalAmount,
		&a.Currency,
		&a.Status,
		&a.SourceType,
		&a.PriorityLevel,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an application and reads it back inside one transaction,
// so a crash mid-flow never leaves a half-created engagement visible.
func (s *ApplicationStore) Create(ctx context.Context, app repository.NewApplication) (*models.Application, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert application: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO applications
			(client_id, consultant_id, service_type, service_country_id,
			 total_amount, currency, status, source_type, priority_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING ` + applicationColumns

	created, err := scanApplication(tx.QueryRow(ctx, query,
		app.ClientID,
		app.ConsultantID,
		app.ServiceType,
		app.ServiceCountryID,
		app.TotalAmount,
		app.Currency,
		app.Status,
		app.SourceType,
		app.PriorityLevel,
	))
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert application: %w", err)
	}
	return created, nil
}

// AssignConsultant sets consultant_id on an existing application. Update
// and read-back share a transaction; the returned row is exactly what was
// committed.
func (s *ApplicationStore) AssignConsultant(ctx context.Context, applicationID, consultantID uuid.UUID) (*models.Application, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assign consultant: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE applications
		SET consultant_id = $2
		WHERE id = $1
		RETURNING ` + applicationColumns

	updated, err := scanApplication(tx.QueryRow(ctx, query, applicationID, consultantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("assign consultant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assign consultant: %w", err)
	}
	return updated, nil
}

func (s *ApplicationStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE client_id = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID,
			&a.ClientID,
			&a.ConsultantID,
			&a.ServiceType,
			&a.ServiceCountryID,
			&a.TotalAmount,
			&a.Currency,
			&a.Status,
			&a.SourceType,
			&a.PriorityLevel,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}

	return apps, nil
}
