package pipeline

import (
	"chat-thread/domain"
	"chat-thread/errors"
	"chat-thread/projection"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CascadeReport counts what a user deletion removed.
type CascadeReport struct {
	UserID        uuid.UUID
	UserFound     bool
	Notifications int
	Histories     int
	MessageIDs    []uuid.UUID
}

// DeleteUser removes a user and every row that references it, in a single transaction:
// notifications first, then history rows, then messages, then the account itself.
// Messages below a doomed message go with it, whoever sent them.
// Running it again for the same user deletes nothing and succeeds.
func (e *Engine) DeleteUser(ctx context.Context, userID uuid.UUID) (CascadeReport, error) {
	var report CascadeReport
	err := e.update(ctx, "delete_user", func(txn *badger.Txn) error {
		var err error
		report, err = e.cascade(txn, userID)
		return err
	})
	if err != nil {
		e.stats.IncrCascadesFailed()
		e.stats.AddOperation("delete_user", userID.String(), "failed")
		e.log.Error("User cascade aborted", "user", userID, "error", err)
		return CascadeReport{}, err
	}

	e.stats.IncrCascadesCompleted()
	e.stats.AddMessagesDeleted(len(report.MessageIDs))
	e.stats.AddOperation("delete_user", userID.String(), "ok")
	e.log.Info("User cascade completed",
		"user", userID,
		"found", report.UserFound,
		"messages", len(report.MessageIDs),
		"notifications", report.Notifications,
		"histories", report.Histories)
	e.removeFromIndex(report.MessageIDs...)
	return report, nil
}

func (e *Engine) cascade(txn *badger.Txn, userID uuid.UUID) (CascadeReport, error) {
	report := CascadeReport{UserID: userID}

	// Activity keys join the transaction read set: a message created for this user,
	// or below one of its messages, after the snapshot makes the commit fail with a conflict.
	if err := e.messages.ReadActivity(txn, userID); err != nil {
		return report, stepError("read activity", err)
	}
	_, err := e.users.Get(txn, userID)
	switch {
	case err == nil:
		report.UserFound = true
	case stderrors.Is(err, errors.ErrNotFound):
		e.log.Debug("User already gone, cleaning leftovers", "user", userID)
	default:
		return report, stepError("load user", err)
	}

	doomed, err := e.doomedMessages(txn, userID)
	if err != nil {
		return report, stepError("resolve messages", err)
	}
	owned, err := e.notifications.ListForUser(txn, userID)
	if err != nil {
		return report, stepError("notifications", err)
	}
	rows, failure := e.collect(txn, doomed, owned)
	if failure != nil {
		return report, stepError(failure.step, failure.err)
	}

	// Writes only from here on
	if failure = e.apply(txn, rows); failure != nil {
		return report, stepError(failure.step, failure.err)
	}
	if err = e.users.Delete(txn, userID); err != nil {
		return report, stepError("user", err)
	}
	// Threads whose root is gone are gone entirely
	rootsGone := lo.FilterMap(doomed, func(m domain.Message, _ int) (uuid.UUID, bool) {
		return m.ThreadID, m.IsRoot()
	})
	if err = e.messages.ClearActivity(txn, append(rootsGone, userID)...); err != nil {
		return report, stepError("user", err)
	}

	report.Notifications = len(rows.notifications)
	report.Histories = len(rows.histories)
	report.MessageIDs = lo.Map(doomed, func(m domain.Message, _ int) uuid.UUID {
		return m.ID
	})
	return report, nil
}

// doomedMessages returns the messages the user sent or received plus every reply below them.
// Each thread is scanned once.
func (e *Engine) doomedMessages(txn *badger.Txn, userID uuid.UUID) ([]domain.Message, error) {
	direct, err := e.messages.ListForUser(txn, userID)
	if err != nil {
		return nil, err
	}
	threads := make(map[uuid.UUID][]domain.Message)
	doomed := append([]domain.Message{}, direct...)
	for _, m := range direct {
		thread, ok := threads[m.ThreadID]
		if !ok {
			if err = e.messages.ReadActivity(txn, m.ThreadID); err != nil {
				return nil, err
			}
			thread, err = e.messages.ListThread(txn, m.ThreadID)
			if err != nil {
				return nil, err
			}
			threads[m.ThreadID] = thread
		}
		doomed = append(doomed, projection.CollectReplies(thread, m.ID)...)
	}
	return lo.UniqBy(doomed, func(m domain.Message) uuid.UUID {
		return m.ID
	}), nil
}

// deletion is every row removed by a message or user deletion.
type deletion struct {
	messages      []domain.Message
	notifications []domain.Notification
	histories     []domain.MessageHistory
}

type stepFailure struct {
	step string
	err  error
}

func (f *stepFailure) Error() string {
	return fmt.Sprintf("step %s: %v", f.step, f.err)
}

func (f *stepFailure) Unwrap() error {
	return f.err
}

// collect loads the derived rows of the doomed messages. It only reads.
// Every scan of a delete runs before its first write: Badger copies and sorts the pending
// writes of an update transaction each time an iterator is opened on it.
func (e *Engine) collect(txn *badger.Txn, doomed []domain.Message, owned []domain.Notification) (deletion, *stepFailure) {
	rows := deletion{messages: doomed, notifications: owned}
	for _, m := range doomed {
		notifications, err := e.notifications.ListForMessage(txn, m.ID)
		if err != nil {
			return rows, &stepFailure{step: "notifications", err: err}
		}
		rows.notifications = append(rows.notifications, notifications...)

		histories, err := e.histories.ListForMessage(txn, m.ID)
		if err != nil {
			return rows, &stepFailure{step: "histories", err: err}
		}
		rows.histories = append(rows.histories, histories...)
	}
	// A notification owned by the user can also point at one of its messages
	rows.notifications = lo.UniqBy(rows.notifications, func(n domain.Notification) uuid.UUID {
		return n.ID
	})
	return rows, nil
}

// apply deletes collected rows in dependency order: notifications, history, then messages.
// It only writes.
func (e *Engine) apply(txn *badger.Txn, rows deletion) *stepFailure {
	if err := e.notifications.Delete(txn, rows.notifications...); err != nil {
		return &stepFailure{step: "notifications", err: err}
	}
	if err := e.histories.Delete(txn, rows.histories...); err != nil {
		return &stepFailure{step: "histories", err: err}
	}
	if err := e.messages.Delete(txn, rows.messages...); err != nil {
		return &stepFailure{step: "messages", err: err}
	}
	return nil
}

func stepError(step string, err error) error {
	return fmt.Errorf("%w: step %s: %w", errors.ErrConflictOnDelete, step, err)
}
