package pipeline

import (
	"chat-thread/errors"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// update runs fn in a read-write transaction and commits it.
// On a commit conflict the whole function runs again against a fresh snapshot,
// so every attempt re-reads what it depends on. Exhausted attempts surface ErrStorageUnavailable.
func (e *Engine) update(ctx context.Context, operation string, fn func(txn *badger.Txn) error) error {
	attempts := max(e.options.RetryAttempts, 1)
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = e.db.Update(fn)
		if !stderrors.Is(err, badger.ErrConflict) {
			return classify(err)
		}
		e.stats.IncrConflictsRetried()
		e.log.Warn("Transaction conflict, retrying",
			"operation", operation, "attempt", attempt, "max_attempts", attempts)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.options.RetryDelay):
		}
	}
	return fmt.Errorf("%w: %s gave up after %d attempts: %w", errors.ErrStorageUnavailable, operation, attempts, err)
}

// view runs fn in a read-only transaction.
func (e *Engine) view(fn func(txn *badger.Txn) error) error {
	return classify(e.db.View(fn))
}

// classify keeps domain errors as they are and reports any other storage failure
// as ErrStorageUnavailable.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errors.ErrNotFound),
		stderrors.Is(err, errors.ErrInvalidReference),
		stderrors.Is(err, errors.ErrConflictOnDelete),
		stderrors.Is(err, errors.ErrStorageUnavailable),
		stderrors.Is(err, errors.ErrUserAlreadyExists),
		stderrors.Is(err, errors.ErrInvalidCommand),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", errors.ErrStorageUnavailable, err)
	}
}
