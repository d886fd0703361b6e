package repositories

import (
	"chat-thread/domain"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_History_Is_Ordered_By_Edit_Time(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repository := NewHistoryRepository(newTestLogger())
	messageID, otherID := uuid.New(), uuid.New()
	at := time.Now().UTC()

	second := domain.MessageHistory{ID: uuid.New(), MessageID: messageID, OldContent: "hey", EditedAt: at.Add(time.Minute)}
	first := domain.MessageHistory{ID: uuid.New(), MessageID: messageID, OldContent: "hi", EditedAt: at}
	other := domain.MessageHistory{ID: uuid.New(), MessageID: otherID, OldContent: "unrelated", EditedAt: at}

	req.NoError(db.Update(func(txn *badger.Txn) error {
		for _, h := range []domain.MessageHistory{second, first, other} {
			if err := repository.Insert(txn, h); err != nil {
				return err
			}
		}
		return nil
	}))

	req.NoError(db.View(func(txn *badger.Txn) error {
		histories, err := repository.ListForMessage(txn, messageID)
		req.NoError(err)
		req.Equal([]domain.MessageHistory{first, second}, histories)
		return nil
	}))

	req.NoError(db.Update(func(txn *badger.Txn) error {
		histories, err := repository.ListForMessage(txn, messageID)
		req.NoError(err)
		return repository.Delete(txn, histories...)
	}))

	req.NoError(db.View(func(txn *badger.Txn) error {
		histories, err := repository.ListForMessage(txn, messageID)
		req.NoError(err)
		req.Empty(histories)

		kept, err := repository.ListForMessage(txn, otherID)
		req.NoError(err)
		req.Equal([]domain.MessageHistory{other}, kept)
		return nil
	}))
}
