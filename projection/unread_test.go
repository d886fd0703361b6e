package projection

import (
	"chat-thread/domain"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Unread_Is_Oldest_First_And_Skips_Read_Messages(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice, bob, clara := f.createUser(t, "alice"), f.createUser(t, "bob"), f.createUser(t, "clara")
	index := NewUnreadIndex(f.messages, f.users, f.log, nil)
	at := time.Now()

	newest := newMessage(nil, clara.ID, bob.ID, at.Add(2*time.Minute))
	oldest := newMessage(nil, alice.ID, bob.ID, at)
	read := newMessage(nil, alice.ID, bob.ID, at.Add(time.Minute))
	read.Read = true
	toAlice := newMessage(nil, bob.ID, alice.ID, at)
	f.insert(t, newest, oldest, read, toAlice)

	var unread []domain.MessageView
	req.NoError(f.db.View(func(txn *badger.Txn) (err error) {
		unread, err = index.UnreadForUser(txn, bob.ID)
		return err
	}))

	req.Equal([]uuid.UUID{oldest.ID, newest.ID}, viewIDs(unread))
	req.Equal(alice, unread[0].Sender)
	req.Equal(clara, unread[1].Sender)
	req.Equal(&bob, unread[0].Receiver)
}

func Test_Unread_Honours_Limit(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice, bob := f.createUser(t, "alice"), f.createUser(t, "bob")
	limit := 2
	index := NewUnreadIndex(f.messages, f.users, f.log, &limit)
	at := time.Now()

	var inserted []domain.Message
	for i := 0; i < 5; i++ {
		inserted = append(inserted, newMessage(nil, alice.ID, bob.ID, at.Add(time.Duration(i)*time.Second)))
	}
	f.insert(t, inserted...)

	var unread []domain.MessageView
	req.NoError(f.db.View(func(txn *badger.Txn) (err error) {
		unread, err = index.UnreadForUser(txn, bob.ID)
		return err
	}))
	req.Equal(ids(inserted[:2]), viewIDs(unread))
}

func Test_Unread_For_User_Without_Messages(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	index := NewUnreadIndex(f.messages, f.users, f.log, nil)

	var unread []domain.MessageView
	req.NoError(f.db.View(func(txn *badger.Txn) (err error) {
		unread, err = index.UnreadForUser(txn, uuid.New())
		return err
	}))
	req.Empty(unread)
}
