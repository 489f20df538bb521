package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const notificationColumns = `notification_id, user_id, gym_id, message, sent_at`

// NotificationRepository persists notifications.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// List returns every notification, newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY sent_at DESC, notification_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// Create stores one notification row.
func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (*domain.Notification, error) {
	const stmt = `INSERT INTO notifications (user_id, gym_id, message, sent_at)
        VALUES ($1,$2,$3,$4)
        RETURNING ` + notificationColumns

	var out domain.Notification
	row := r.pool.QueryRow(ctx, stmt, notification.UserID, notification.GymID, notification.Message, notification.SentAt)
	if err := row.Scan(&out.ID, &out.UserID, &out.GymID, &out.Message, &out.SentAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one notification, or nil when unknown.
func (r *NotificationRepository) Get(ctx context.Context, notificationID int64) (*domain.Notification, error) {
	var n domain.Notification
	row := r.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE notification_id=$1`, notificationID)
	if err := row.Scan(&n.ID, &n.UserID, &n.GymID, &n.Message, &n.SentAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Delete removes one notification row.
func (r *NotificationRepository) Delete(ctx context.Context, notificationID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE notification_id=$1`, notificationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func listNotificationsByUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]domain.Notification, error) {
	rows, err := pool.Query(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE user_id=$1 ORDER BY sent_at DESC, notification_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.GymID, &n.Message, &n.SentAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
