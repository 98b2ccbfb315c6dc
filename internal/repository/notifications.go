package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hallbook/internal/database"
	"hallbook/internal/models"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	var data any
	if notification.Data != nil {
		raw, err := json.Marshal(notification.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		data = raw
	}

	query := `
		INSERT INTO notifications (id, tenant_id, type, title, message, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		notification.ID,
		notification.TenantID,
		notification.Type,
		notification.Title,
		notification.Message,
		data,
		notification.IsRead,
	).Scan(&notification.CreatedAt)
}
