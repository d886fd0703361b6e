//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"bytes"
	"chat-thread/domain"
	"chat-thread/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IUserRepository is the registry of identities messages can reference.
type IUserRepository interface {
	Create(txn *badger.Txn, user domain.User) error
	Get(txn *badger.Txn, id uuid.UUID) (domain.User, error)
	GetByUsername(txn *badger.Txn, username string) (domain.User, error)
	GetMany(txn *badger.Txn, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
	Delete(txn *badger.Txn, id uuid.UUID) error
}

type UserRepository struct {
	log *slog.Logger
}

func NewUserRepository(log *slog.Logger) *UserRepository {
	return &UserRepository{log: log}
}

func userKey(id uuid.UUID) []byte {
	return []byte("user:" + id.String())
}

func usernameKey(username string) []byte {
	return []byte("idx:username:" + username)
}

// Create persists the user and reserves its username.
func (u UserRepository) Create(txn *badger.Txn, user domain.User) error {
	if _, err := txn.Get(usernameKey(user.Username)); err == nil {
		return fmt.Errorf("%w: %s", errors.ErrUserAlreadyExists, user.Username)
	} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	if err := txn.Set(userKey(user.ID), marshalUser(user)); err != nil {
		return err
	}
	return txn.Set(usernameKey(user.Username), []byte(user.ID.String()))
}

func (u UserRepository) Get(txn *badger.Txn, id uuid.UUID) (domain.User, error) {
	item, err := txn.Get(userKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, fmt.Errorf("%w: user %s", errors.ErrNotFound, id)
	}
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	err = item.Value(func(value []byte) error {
		user, err = unmarshalUser(value)
		return err
	})
	return user, err
}

func (u UserRepository) GetByUsername(txn *badger.Txn, username string) (domain.User, error) {
	item, err := txn.Get(usernameKey(username))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, fmt.Errorf("%w: user %q", errors.ErrNotFound, username)
	}
	if err != nil {
		return domain.User{}, err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return domain.User{}, err
	}
	id, err := uuid.ParseBytes(value)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, err)
	}
	return u.Get(txn, id)
}

// GetMany resolves a batch of users with one iterator, seeking keys in sorted order
// like an IN list. Missing users are left out of the map.
func (u UserRepository) GetMany(txn *badger.Txn, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	keys := lo.Map(lo.Uniq(lo.Without(ids, uuid.Nil)), func(id uuid.UUID, _ int) []byte {
		return userKey(id)
	})
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})

	users := make(map[uuid.UUID]domain.User, len(keys))
	if len(keys) == 0 {
		return users, nil
	}
	options := badger.DefaultIteratorOptions
	options.Prefix = []byte("user:")
	it := txn.NewIterator(options)
	defer it.Close()

	for _, key := range keys {
		it.Seek(key)
		if !it.Valid() || !bytes.Equal(it.Item().Key(), key) {
			continue
		}
		var user domain.User
		err := it.Item().Value(func(value []byte) (err error) {
			user, err = unmarshalUser(value)
			return err
		})
		if err != nil {
			return nil, err
		}
		users[user.ID] = user
	}
	return users, nil
}

// Delete removes the user and frees its username. Deleting a missing user is a no-op.
func (u UserRepository) Delete(txn *badger.Txn, id uuid.UUID) error {
	user, err := u.Get(txn, id)
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = txn.Delete(userKey(id)); err != nil {
		return err
	}
	return txn.Delete(usernameKey(user.Username))
}
