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

const documentColumns = `id, client_id, document_name, status, consultant_notes, created_at, updated_at`

type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

func (s *DocumentStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ClientDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM client_documents
		WHERE client_id = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.ClientDocument, 0)
	for rows.Next() {
		var d models.ClientDocument
		if err := rows.Scan(
			&d.ID,
			&d.ClientID,
			&d.DocumentName,
			&d.Status,
			&d.ConsultantNotes,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

func (s *DocumentStore) UpdateStatus(ctx context.Context, documentID uuid.UUID, status string, notes *string) (*models.ClientDocument, error) {
	// COALESCE keeps existing notes when the caller passes none; an
	// explicit empty string clears them.
	query := `
		UPDATE client_documents
		SET status = $2,
		    consultant_notes = COALESCE($3, consultant_notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns

	var d models.ClientDocument
	err := s.pool.QueryRow(ctx, query, documentID, status, notes).Scan(
		&d.ID,
		&d.ClientID,
		&d.DocumentName,
		&d.Status,
		&d.ConsultantNotes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update document status: %w", err)
	}
	return &d, nil
}
