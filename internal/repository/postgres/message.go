package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veridyen/consultdesk/internal/models"
)

const messageColumns = `id, sender_id, recipient_id, message, message_type, original_language, needs_translation, is_read, created_at`

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Create(ctx context.Context, senderID, recipientID uuid.UUID, body, messageType, originalLanguage string) (*models.Message, error) {
	// New messages always start unread and untranslated; those flags are
	// mutated by downstream flows, never at creation.
	query := `
		INSERT INTO messages
			(sender_id, recipient_id, message, message_type, original_language,
			 needs_translation, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, false, now())
		RETURNING ` + messageColumns

	var msg models.Message
	err := s.pool.QueryRow(ctx, query, senderID, recipientID, body, messageType, originalLanguage).Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.RecipientID,
		&msg.Message,
		&msg.MessageType,
		&msg.OriginalLanguage,
		&msg.NeedsTranslation,
		&msg.IsRead,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &msg, nil
}

// ListForParticipant returns a participant's messages, newest first.
//
// With a pair id the predicate is the two-party visibility rule:
// {sender, recipient} = {participant, pair} in either order. Without one,
// it is every message the participant sent or received. No third party's
// rows can match either shape.
func (s *MessageStore) ListForParticipant(ctx context.Context, participantID uuid.UUID, pairID *uuid.UUID) ([]models.Message, error) {
	var query string
	var args []any

	if pairID != nil {
		query = `
			SELECT ` + messageColumns + `
			FROM messages
			WHERE (sender_id = $1 AND recipient_id = $2)
			   OR (sender_id = $2 AND recipient_id = $1)
			ORDER BY created_at DESC`
		args = []any{participantID, *pairID}
	} else {
		query = `
			SELECT ` + messageColumns + `
			FROM messages
			WHERE sender_id = $1 OR recipient_id = $1
			ORDER BY created_at DESC`
		args = []any{participantID}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.RecipientID,
			&msg.Message,
			&msg.MessageType,
			&msg.OriginalLanguage,
			&msg.NeedsTranslation,
			&msg.IsRead,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
