//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"chat-thread/domain"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// INotificationRepository holds one row per created message, owned by its receiver.
// Only the trigger pipeline writes to it.
type INotificationRepository interface {
	Insert(txn *badger.Txn, notification domain.Notification) error
	ListForUser(txn *badger.Txn, userID uuid.UUID) ([]domain.Notification, error)
	ListForMessage(txn *badger.Txn, messageID uuid.UUID) ([]domain.Notification, error)
	Delete(txn *badger.Txn, notifications ...domain.Notification) error
}

type NotificationRepository struct {
	log *slog.Logger
}

func NewNotificationRepository(log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{log: log}
}

func notificationKey(id uuid.UUID) []byte {
	return []byte("notif:" + id.String())
}

// Insert stores the notification with two index entries:
// "idx:notif_user:{user}:..." for the inbox and "idx:notif_msg:{message}:..." for cleanup.
// Both entries carry a copy of the row, so listing never goes back to the primary key.
func (r NotificationRepository) Insert(txn *badger.Txn, notification domain.Notification) error {
	value := marshalNotification(notification)
	for _, key := range append(notificationIndexKeys(notification), notificationKey(notification.ID)) {
		if err := txn.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns the inbox of a user, oldest first.
func (r NotificationRepository) ListForUser(txn *badger.Txn, userID uuid.UUID) ([]domain.Notification, error) {
	return r.load(txn, indexPrefix("notif_user", userID))
}

func (r NotificationRepository) ListForMessage(txn *badger.Txn, messageID uuid.UUID) ([]domain.Notification, error) {
	return r.load(txn, indexPrefix("notif_msg", messageID))
}

// Delete removes already loaded rows and both their index entries without reading anything.
// Missing rows are a no-op in Badger.
func (r NotificationRepository) Delete(txn *badger.Txn, notifications ...domain.Notification) error {
	for _, n := range notifications {
		if err := deleteKeys(txn, append(notificationIndexKeys(n), notificationKey(n.ID))); err != nil {
			return err
		}
	}
	return nil
}

// load decodes the rows stored under an index prefix. A row that cannot be read fails the call.
func (r NotificationRepository) load(txn *badger.Txn, prefix []byte) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := scanValues(txn, prefix, func(value []byte) error {
		notification, err := unmarshalNotification(value)
		if err != nil {
			return fmt.Errorf("notification under %s: %w", prefix, err)
		}
		notifications = append(notifications, notification)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func notificationIndexKeys(n domain.Notification) [][]byte {
	return [][]byte{
		indexKey("notif_user", n.UserID, n.CreatedAt, n.ID),
		indexKey("notif_msg", n.MessageID, n.CreatedAt, n.ID),
	}
}
