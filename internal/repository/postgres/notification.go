package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veridyen/consultdesk/internal/models"
)

type NotificationStore struct {
	pool *pgxpool.Pool
}

func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

func (s *NotificationStore) ListByClient(ctx context.Context, clientID uuid.UUID, notificationType string) ([]models.ClientNotification, error) {
	query := `
		SELECT id, client_id, notification_type, title, body, is_read, created_at
		FROM client_notifications
		WHERE client_id = $1 AND notification_type = $2
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, clientID, notificationType)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.ClientNotification, 0)
	for rows.Next() {
		var n models.ClientNotification
		if err := rows.Scan(
			&n.ID,
			&n.ClientID,
			&n.NotificationType,
			&n.Title,
			&n.Body,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}
