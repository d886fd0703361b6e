package repositories

import (
	"bytes"
	"chat-thread/errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Secondary index keys follow "idx:{name}:{owner}:{timestamp_padded}:{uuid}".
// The 19-digit zero padding keeps lexicographical order equal to chronological order,
// the trailing UUID breaks ties between entries written in the same nanosecond.
// Timestamps before 1970 are rejected when commands are validated.
func indexKey(name string, owner uuid.UUID, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("idx:%s:%s:%019d:%s", name, owner, at.UnixNano(), id))
}

func indexPrefix(name string, owner uuid.UUID) []byte {
	return []byte(fmt.Sprintf("idx:%s:%s:", name, owner))
}

// walkIndex calls fn with the trailing UUID of every key under prefix, in key order,
// until fn returns false or an error. Only keys are read.
func walkIndex(txn *badger.Txn, prefix []byte, fn func(id uuid.UUID) (bool, error)) error {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id, err := trailingID(it.Item().Key())
		if err != nil {
			return err
		}
		more, err := fn(id)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

// scanValues calls fn with the value of every key under prefix, in key order.
func scanValues(txn *badger.Txn, prefix []byte, fn func(value []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

func deleteKeys(txn *badger.Txn, keys [][]byte) error {
	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func trailingID(key []byte) (uuid.UUID, error) {
	i := bytes.LastIndexByte(key, ':')
	if i < 0 {
		return uuid.Nil, fmt.Errorf("%w: malformed index key %q", errors.ErrCorruptedRecord, key)
	}
	id, err := uuid.ParseBytes(key[i+1:])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed index key %q", errors.ErrCorruptedRecord, key)
	}
	return id, nil
}
