package repositories

import (
	"chat-thread/domain"
	"chat-thread/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Notifications_By_User_And_By_Message(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repository := NewNotificationRepository(newTestLogger())
	alice, bob := uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()
	at := time.Now().UTC()

	forAlice := []domain.Notification{
		{ID: uuid.New(), UserID: alice, MessageID: first, CreatedAt: at},
		{ID: uuid.New(), UserID: alice, MessageID: second, CreatedAt: at.Add(time.Second)},
	}
	forBob := domain.Notification{ID: uuid.New(), UserID: bob, MessageID: second, CreatedAt: at.Add(2 * time.Second)}

	req.NoError(db.Update(func(txn *badger.Txn) error {
		for _, n := range append(forAlice, forBob) {
			if err := repository.Insert(txn, n); err != nil {
				return err
			}
		}
		return nil
	}))

	req.NoError(db.View(func(txn *badger.Txn) error {
		inbox, err := repository.ListForUser(txn, alice)
		req.NoError(err)
		req.Equal(forAlice, inbox)

		bySecond, err := repository.ListForMessage(txn, second)
		req.NoError(err)
		req.ElementsMatch([]domain.Notification{forAlice[1], forBob}, bySecond)
		return nil
	}))

	// Deleting rows found by message also clears the user index of the other owner
	req.NoError(db.Update(func(txn *badger.Txn) error {
		bySecond, err := repository.ListForMessage(txn, second)
		req.NoError(err)
		req.Len(bySecond, 2)
		return repository.Delete(txn, bySecond...)
	}))
	req.NoError(db.View(func(txn *badger.Txn) error {
		inbox, err := repository.ListForUser(txn, bob)
		req.NoError(err)
		req.Empty(inbox)

		inbox, err = repository.ListForUser(txn, alice)
		req.NoError(err)
		req.Equal(forAlice[:1], inbox)
		return nil
	}))

	req.NoError(db.Update(func(txn *badger.Txn) error {
		return repository.Delete(txn, forAlice...)
	}))
	// Idempotent
	req.NoError(db.Update(func(txn *badger.Txn) error {
		return repository.Delete(txn, forAlice...)
	}))
	req.NoError(db.View(func(txn *badger.Txn) error {
		req.Empty(scanKeys(txn, []byte("notif:")))
		req.Empty(scanKeys(txn, []byte("idx:notif_")))
		return nil
	}))
}

func Test_Notifications_Surface_Unreadable_Rows(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repository := NewNotificationRepository(newTestLogger())
	alice := uuid.New()
	notification := domain.Notification{ID: uuid.New(), UserID: alice, MessageID: uuid.New(), CreatedAt: time.Now().UTC()}

	req.NoError(db.Update(func(txn *badger.Txn) error {
		if err := repository.Insert(txn, notification); err != nil {
			return err
		}
		return txn.Set(notificationIndexKeys(notification)[0], []byte{0xff})
	}))

	err := db.View(func(txn *badger.Txn) error {
		_, err := repository.ListForUser(txn, alice)
		return err
	})
	req.ErrorIs(err, errors.ErrCorruptedRecord)
}
