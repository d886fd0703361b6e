//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=../mocks/mock_history_repository.go -package=mocks
package repositories

import (
	"chat-thread/domain"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// IHistoryRepository is the append-only audit log of superseded contents.
type IHistoryRepository interface {
	Insert(txn *badger.Txn, history domain.MessageHistory) error
	ListForMessage(txn *badger.Txn, messageID uuid.UUID) ([]domain.MessageHistory, error)
	Delete(txn *badger.Txn, histories ...domain.MessageHistory) error
}

type HistoryRepository struct {
	log *slog.Logger
}

func NewHistoryRepository(log *slog.Logger) *HistoryRepository {
	return &HistoryRepository{log: log}
}

// The key is "hist:{message_id}:{edited_at_padded}:{uuid}": rows of a message are contiguous
// and sorted by edit time, so reading or clearing them is a single prefix scan.
func historyKey(h domain.MessageHistory) []byte {
	return []byte(fmt.Sprintf("hist:%s:%019d:%s", h.MessageID, h.EditedAt.UnixNano(), h.ID))
}

func historyPrefix(messageID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("hist:%s:", messageID))
}

func (r HistoryRepository) Insert(txn *badger.Txn, history domain.MessageHistory) error {
	return txn.Set(historyKey(history), marshalHistory(history))
}

// ListForMessage returns the pre-images of a message, oldest edit first.
func (r HistoryRepository) ListForMessage(txn *badger.Txn, messageID uuid.UUID) ([]domain.MessageHistory, error) {
	var histories []domain.MessageHistory
	err := scanValues(txn, historyPrefix(messageID), func(value []byte) error {
		history, err := unmarshalHistory(value)
		if err != nil {
			return err
		}
		histories = append(histories, history)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// Delete removes already loaded rows. Their keys are rebuilt from the rows, nothing is read.
func (r HistoryRepository) Delete(txn *badger.Txn, histories ...domain.MessageHistory) error {
	for _, h := range histories {
		if err := txn.Delete(historyKey(h)); err != nil {
			return err
		}
	}
	return nil
}
