//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-thread/domain"
	"chat-thread/errors"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IMessageRepository is the message store. Every method runs inside the caller's transaction
// so that derived rows can be written atomically with the message itself.
type IMessageRepository interface {
	Insert(txn *badger.Txn, message domain.Message) error
	Put(txn *badger.Txn, message domain.Message) error
	Get(txn *badger.Txn, id uuid.UUID) (domain.Message, error)
	Delete(txn *badger.Txn, messages ...domain.Message) error
	ListReplies(txn *badger.Txn, parentID uuid.UUID) ([]domain.Message, error)
	ListThread(txn *badger.Txn, threadID uuid.UUID) ([]domain.Message, error)
	ListForUser(txn *badger.Txn, userID uuid.UUID) ([]domain.Message, error)
	ListUnread(txn *badger.Txn, receiverID uuid.UUID, limit int) ([]domain.Message, error)
	Touch(txn *badger.Txn, ids ...uuid.UUID) error
	ReadActivity(txn *badger.Txn, ids ...uuid.UUID) error
	ClearActivity(txn *badger.Txn, ids ...uuid.UUID) error
}

type MessageRepository struct {
	log *slog.Logger
}

func NewMessageRepository(log *slog.Logger) *MessageRepository {
	return &MessageRepository{log: log}
}

func messageKey(id uuid.UUID) []byte {
	return []byte("msg:" + id.String())
}

// activityKey is keyed by user or thread ID. Both are UUIDs so they share one key space.
func activityKey(id uuid.UUID) []byte {
	return []byte("act:" + id.String())
}

// Insert stores a new message and its index entries.
// The parent, when set, must already exist: a message is never inserted below a missing node,
// so the parent graph stays a forest.
func (r MessageRepository) Insert(txn *badger.Txn, message domain.Message) error {
	if message.ParentID != uuid.Nil {
		if message.ParentID == message.ID {
			return fmt.Errorf("%w: message %s cannot reply to itself", errors.ErrInvalidReference, message.ID)
		}
		if _, err := r.Get(txn, message.ParentID); err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				return fmt.Errorf("%w: parent %s does not exist", errors.ErrInvalidReference, message.ParentID)
			}
			return err
		}
	}
	if _, err := txn.Get(messageKey(message.ID)); err == nil {
		return fmt.Errorf("%w: message %s already exists", errors.ErrInvalidReference, message.ID)
	} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	if err := r.write(txn, message); err != nil {
		return err
	}
	for _, key := range messageIndexKeys(message) {
		if err := txn.Set(key, nil); err != nil {
			return err
		}
	}
	return nil
}

// Put overwrites the mutable fields of an existing message. Index keys never change
// because sender, receiver, parent, thread and creation time are immutable.
func (r MessageRepository) Put(txn *badger.Txn, message domain.Message) error {
	current, err := r.Get(txn, message.ID)
	if err != nil {
		return err
	}
	current.Content = message.Content
	current.Edited = message.Edited
	current.Read = message.Read
	return r.write(txn, current)
}

// write stores the record under its own key and under its thread entry.
// The thread entry carries a copy so a whole thread is read back with one prefix scan.
func (r MessageRepository) write(txn *badger.Txn, message domain.Message) error {
	value := marshalMessage(message)
	if err := txn.Set(messageKey(message.ID), value); err != nil {
		return err
	}
	return txn.Set(threadEntryKey(message), value)
}

func (r MessageRepository) Get(txn *badger.Txn, id uuid.UUID) (domain.Message, error) {
	item, err := txn.Get(messageKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, fmt.Errorf("%w: message %s", errors.ErrNotFound, id)
	}
	if err != nil {
		return domain.Message{}, err
	}
	var message domain.Message
	err = item.Value(func(value []byte) error {
		message, err = unmarshalMessage(value)
		return err
	})
	return message, err
}

// Delete removes already loaded messages with their index entries. It reads nothing,
// so callers collect every row first and then delete without interleaving scans.
// Missing messages are a no-op. Replies, notifications and history are not touched here.
func (r MessageRepository) Delete(txn *badger.Txn, messages ...domain.Message) error {
	for _, m := range messages {
		keys := append(messageIndexKeys(m), messageKey(m.ID), threadEntryKey(m))
		if err := deleteKeys(txn, keys); err != nil {
			return err
		}
	}
	return nil
}

// ListReplies returns the direct children of a message, oldest first.
func (r MessageRepository) ListReplies(txn *badger.Txn, parentID uuid.UUID) ([]domain.Message, error) {
	return r.load(txn, indexPrefix("reply", parentID))
}

// ListThread returns every message of a thread, root included, oldest first.
// Records are decoded from the thread entries during a single prefix scan.
func (r MessageRepository) ListThread(txn *badger.Txn, threadID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	err := scanValues(txn, indexPrefix("thread", threadID), func(value []byte) error {
		message, err := unmarshalMessage(value)
		if err != nil {
			return err
		}
		messages = append(messages, message)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListForUser returns the messages sent or received by a user.
func (r MessageRepository) ListForUser(txn *badger.Txn, userID uuid.UUID) ([]domain.Message, error) {
	sent, err := r.load(txn, indexPrefix("sender", userID))
	if err != nil {
		return nil, err
	}
	received, err := r.load(txn, indexPrefix("receiver", userID))
	if err != nil {
		return nil, err
	}
	// A message sent to oneself is indexed twice
	return lo.UniqBy(append(sent, received...), func(m domain.Message) uuid.UUID {
		return m.ID
	}), nil
}

// ListUnread returns the unread messages addressed to a user, oldest first.
// The scan stops once limit messages are found. limit <= 0 means no limit.
func (r MessageRepository) ListUnread(txn *badger.Txn, receiverID uuid.UUID, limit int) ([]domain.Message, error) {
	var unread []domain.Message
	prefix := indexPrefix("receiver", receiverID)
	err := r.walk(txn, prefix, func(message domain.Message) bool {
		if !message.Read {
			unread = append(unread, message)
		}
		return limit <= 0 || len(unread) < limit
	})
	if err != nil {
		return nil, err
	}
	return unread, nil
}

// Touch records a write involving users or threads. A transaction that read the same keys
// conflicts with it on commit, so a message can never slip past a concurrent deletion.
func (r MessageRepository) Touch(txn *badger.Txn, ids ...uuid.UUID) error {
	stamp := []byte(uuid.NewString())
	for _, id := range ids {
		if err := txn.Set(activityKey(id), stamp); err != nil {
			return err
		}
	}
	return nil
}

// ReadActivity adds the activity keys to the transaction read set.
func (r MessageRepository) ReadActivity(txn *badger.Txn, ids ...uuid.UUID) error {
	for _, id := range ids {
		if _, err := txn.Get(activityKey(id)); err != nil && !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}

// ClearActivity drops the activity keys of deleted users or threads.
func (r MessageRepository) ClearActivity(txn *badger.Txn, ids ...uuid.UUID) error {
	return deleteKeys(txn, lo.Map(ids, func(id uuid.UUID, _ int) []byte {
		return activityKey(id)
	}))
}

// load resolves the message IDs found under an index prefix.
func (r MessageRepository) load(txn *badger.Txn, prefix []byte) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.walk(txn, prefix, func(message domain.Message) bool {
		messages = append(messages, message)
		return true
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// walk reads the message behind every index entry under prefix until fn returns false.
// Dangling index entries are skipped and reported, any other read error is returned.
func (r MessageRepository) walk(txn *badger.Txn, prefix []byte, fn func(message domain.Message) bool) error {
	return walkIndex(txn, prefix, func(id uuid.UUID) (bool, error) {
		message, err := r.Get(txn, id)
		if stderrors.Is(err, errors.ErrNotFound) {
			r.log.Warn("Dangling index entry", "prefix", string(prefix), "message", id)
			return true, nil
		}
		if err != nil {
			return false, err
		}
		return fn(message), nil
	})
}

func threadEntryKey(m domain.Message) []byte {
	return indexKey("thread", m.ThreadID, m.CreatedAt, m.ID)
}

func messageIndexKeys(m domain.Message) [][]byte {
	// The thread entry is written by write, with a value
	keys := [][]byte{indexKey("sender", m.SenderID, m.CreatedAt, m.ID)}
	if m.HasReceiver() {
		keys = append(keys, indexKey("receiver", m.ReceiverID, m.CreatedAt, m.ID))
	}
	if !m.IsRoot() {
		keys = append(keys, indexKey("reply", m.ParentID, m.CreatedAt, m.ID))
	}
	return keys
}
