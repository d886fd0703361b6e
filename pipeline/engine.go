// Package pipeline is the single write path of the messaging engine.
// Every write opens one Badger transaction, applies the message change and the rows derived
// from it, then commits. Projections outside Badger are refreshed after commit.
package pipeline

import (
	"chat-thread/domain"
	"chat-thread/domain/chat"
	domainsearch "chat-thread/domain/search"
	"chat-thread/errors"
	"chat-thread/moderation"
	"chat-thread/observability"
	"chat-thread/projection"
	"chat-thread/repositories"
	"chat-thread/search"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Options struct {
	MaxContentLength int
	RetryAttempts    int
	RetryDelay       time.Duration
	LimitMessages    *int
}

// Repositories groups the four stores sharing the same Badger instance.
type Repositories struct {
	Messages      repositories.IMessageRepository
	Notifications repositories.INotificationRepository
	Histories     repositories.IHistoryRepository
	Users         repositories.IUserRepository
}

func NewRepositories(log *slog.Logger) Repositories {
	return Repositories{
		Messages:      repositories.NewMessageRepository(log),
		Notifications: repositories.NewNotificationRepository(log),
		Histories:     repositories.NewHistoryRepository(log),
		Users:         repositories.NewUserRepository(log),
	}
}

type Engine struct {
	db            *badger.DB
	log           *slog.Logger
	stats         *observability.MonitoringManager
	messages      repositories.IMessageRepository
	notifications repositories.INotificationRepository
	histories     repositories.IHistoryRepository
	users         repositories.IUserRepository
	indexer       search.IIndexer
	moderator     *moderation.Moderator
	threads       projection.ThreadMaterializer
	unread        projection.UnreadIndex
	options       Options
	now           func() time.Time
}

// NewEngine wires the stores and projections together.
// indexer and moderator are optional: nil disables full-text search or censoring.
func NewEngine(
	db *badger.DB,
	repos Repositories,
	indexer search.IIndexer,
	moderator *moderation.Moderator,
	stats *observability.MonitoringManager,
	options Options,
	log *slog.Logger,
) *Engine {
	if stats == nil {
		stats = observability.NewMonitoringManager(log)
	}
	return &Engine{
		db:            db,
		log:           log,
		stats:         stats,
		messages:      repos.Messages,
		notifications: repos.Notifications,
		histories:     repos.Histories,
		users:         repos.Users,
		indexer:       indexer,
		moderator:     moderator,
		threads:       projection.NewThreadMaterializer(repos.Messages, repos.Users, log),
		unread:        projection.NewUnreadIndex(repos.Messages, repos.Users, log, options.LimitMessages),
		options:       options,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Stats returns the engine counters.
func (e *Engine) Stats() observability.EngineStats {
	return e.stats.GetLatest()
}

// RegisterUser creates an account. It is the entry point of the account lifecycle collaborator.
func (e *Engine) RegisterUser(ctx context.Context, cmd chat.RegisterUserCommand) (domain.User, error) {
	if err := cmd.Validate(); err != nil {
		return domain.User{}, err
	}
	user := domain.User{ID: uuid.New(), Username: cmd.Username, CreatedAt: e.now()}
	err := e.update(ctx, "register", func(txn *badger.Txn) error {
		return e.users.Create(txn, user)
	})
	if err != nil {
		return domain.User{}, err
	}
	e.stats.AddOperation("register", user.ID.String(), "ok")
	e.log.Info("User registered", "user", user.ID, "username", user.Username)
	return user, nil
}

func (e *Engine) GetUserByUsername(username string) (domain.User, error) {
	var user domain.User
	err := e.view(func(txn *badger.Txn) (err error) {
		user, err = e.users.GetByUsername(txn, username)
		return err
	})
	return user, err
}

// Send creates a message and its notification atomically.
// The receiver gets exactly one notification; a message without receiver gets none.
func (e *Engine) Send(ctx context.Context, cmd chat.SendMessageCommand) (domain.Message, error) {
	if err := cmd.Validate(e.options.MaxContentLength); err != nil {
		return domain.Message{}, err
	}
	content, censored := e.moderator.Censor(cmd.Content)
	if len(censored) > 0 {
		e.log.Info("Message content censored", "sender", cmd.SenderID, "words", len(censored))
	}

	createdAt := cmd.CreatedAt.UTC()
	if cmd.CreatedAt.IsZero() {
		createdAt = e.now()
	}
	message := domain.Message{
		ID:        uuid.New(),
		SenderID:  cmd.SenderID,
		Content:   content,
		CreatedAt: createdAt,
	}
	if cmd.ReceiverID != nil {
		message.ReceiverID = *cmd.ReceiverID
	}
	if cmd.ParentID != nil {
		message.ParentID = *cmd.ParentID
	}

	var notified bool
	err := e.update(ctx, "send", func(txn *badger.Txn) error {
		participants, err := e.checkParticipants(txn, message)
		if err != nil {
			return err
		}
		threadID, err := e.threadOf(txn, message)
		if err != nil {
			return err
		}
		message.ThreadID = threadID
		if err = e.messages.Insert(txn, message); err != nil {
			return err
		}
		// A concurrent deletion of a participant or of the thread reads these keys and conflicts with us
		touched := participants
		if !message.IsRoot() {
			touched = append(touched, threadID)
		}
		if err = e.messages.Touch(txn, touched...); err != nil {
			return err
		}
		notified, err = e.notifyOnCreate(txn, message)
		return err
	})
	if err != nil {
		e.stats.AddOperation("send", message.ID.String(), "failed")
		return domain.Message{}, err
	}

	e.stats.IncrMessagesCreated()
	if notified {
		e.stats.IncrNotificationsCreated()
	}
	e.stats.AddOperation("send", message.ID.String(), "ok")
	e.log.Debug("Message created", "message", message.ID, "thread", message.ThreadID, "notified", notified)
	e.refreshIndex(message)
	return message, nil
}

// checkParticipants rejects unknown senders or receivers and returns their IDs.
func (e *Engine) checkParticipants(txn *badger.Txn, message domain.Message) ([]uuid.UUID, error) {
	participants := []uuid.UUID{message.SenderID}
	if message.HasReceiver() {
		participants = append(participants, message.ReceiverID)
	}
	participants = lo.Uniq(participants)
	for _, userID := range participants {
		if _, err := e.users.Get(txn, userID); err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				return nil, fmt.Errorf("%w: user %s does not exist", errors.ErrInvalidReference, userID)
			}
			return nil, err
		}
	}
	return participants, nil
}

// threadOf returns the thread of the parent, or the message's own ID for a root.
func (e *Engine) threadOf(txn *badger.Txn, message domain.Message) (uuid.UUID, error) {
	if message.IsRoot() {
		return message.ID, nil
	}
	parent, err := e.messages.Get(txn, message.ParentID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%w: parent %s does not exist", errors.ErrInvalidReference, message.ParentID)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return parent.ThreadID, nil
}

// notifyOnCreate is the post-create step. It never runs for edits.
func (e *Engine) notifyOnCreate(txn *badger.Txn, message domain.Message) (bool, error) {
	if !message.HasReceiver() {
		return false, nil
	}
	notification := domain.Notification{
		ID:        uuid.New(),
		UserID:    message.ReceiverID,
		MessageID: message.ID,
		CreatedAt: message.CreatedAt,
	}
	if err := e.notifications.Insert(txn, notification); err != nil {
		return false, fmt.Errorf("notify %s: %w", message.ReceiverID, err)
	}
	return true, nil
}

// EditContent replaces the content of a message. The pre-image is stored as a history row
// in the same transaction as the new content, and only when the content actually changes.
func (e *Engine) EditContent(ctx context.Context, cmd chat.EditMessageCommand) (domain.Message, error) {
	if err := cmd.Validate(e.options.MaxContentLength); err != nil {
		return domain.Message{}, err
	}
	content, _ := e.moderator.Censor(cmd.Content)

	var (
		message domain.Message
		changed bool
	)
	err := e.update(ctx, "edit", func(txn *badger.Txn) error {
		current, err := e.messages.Get(txn, cmd.MessageID)
		if err != nil {
			return err
		}
		message = current
		if current.Content == content {
			changed = false
			return nil
		}
		if err = e.snapshotPreImage(txn, current); err != nil {
			return err
		}
		message.Content = content
		message.Edited = true
		changed = true
		return e.messages.Put(txn, message)
	})
	if err != nil {
		e.stats.AddOperation("edit", cmd.MessageID.String(), "failed")
		return domain.Message{}, err
	}

	if !changed {
		e.stats.IncrEditsSkipped()
		e.log.Debug("Edit skipped, content unchanged", "message", message.ID)
		return message, nil
	}
	e.stats.IncrHistoryRows()
	e.stats.AddOperation("edit", message.ID.String(), "ok")
	e.refreshIndex(message)
	return message, nil
}

// snapshotPreImage is the pre-update step: the current content is appended to the history
// before the new content is written.
func (e *Engine) snapshotPreImage(txn *badger.Txn, current domain.Message) error {
	history := domain.MessageHistory{
		ID:         uuid.New(),
		MessageID:  current.ID,
		OldContent: current.Content,
		EditedAt:   e.now(),
	}
	if err := e.histories.Insert(txn, history); err != nil {
		return fmt.Errorf("snapshot pre-image of %s: %w", current.ID, err)
	}
	return nil
}

// MarkRead flags a message as read. Marking a read message again writes nothing.
func (e *Engine) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	var marked bool
	err := e.update(ctx, "mark_read", func(txn *badger.Txn) error {
		message, err := e.messages.Get(txn, messageID)
		if err != nil {
			return err
		}
		if message.Read {
			marked = false
			return nil
		}
		message.Read = true
		marked = true
		return e.messages.Put(txn, message)
	})
	if err != nil {
		return err
	}
	if marked {
		e.stats.IncrMessagesRead()
	}
	return nil
}

// DeleteMessage removes a message with its whole reply subtree,
// with the notifications and history rows of every removed message.
// It returns the removed IDs, the message first, then its replies depth-first.
func (e *Engine) DeleteMessage(ctx context.Context, messageID uuid.UUID) ([]uuid.UUID, error) {
	var deleted []uuid.UUID
	err := e.update(ctx, "delete", func(txn *badger.Txn) error {
		message, err := e.messages.Get(txn, messageID)
		if err != nil {
			return err
		}
		if err = e.messages.ReadActivity(txn, message.ThreadID); err != nil {
			return err
		}
		thread, err := e.messages.ListThread(txn, message.ThreadID)
		if err != nil {
			return err
		}
		doomed := append([]domain.Message{message}, projection.CollectReplies(thread, message.ID)...)
		rows, failure := e.collect(txn, doomed, nil)
		if failure != nil {
			return failure
		}

		// Writes only from here on
		if failure = e.apply(txn, rows); failure != nil {
			return failure
		}
		deleted = lo.Map(doomed, func(m domain.Message, _ int) uuid.UUID {
			return m.ID
		})
		if message.IsRoot() {
			return e.messages.ClearActivity(txn, message.ThreadID)
		}
		return nil
	})
	if err != nil {
		e.stats.AddOperation("delete", messageID.String(), "failed")
		return nil, err
	}
	e.stats.AddMessagesDeleted(len(deleted))
	e.stats.AddOperation("delete", messageID.String(), "ok")
	e.log.Debug("Message deleted", "message", messageID, "count", len(deleted))
	e.removeFromIndex(deleted...)
	return deleted, nil
}

func (e *Engine) Get(messageID uuid.UUID) (domain.Message, error) {
	var message domain.Message
	err := e.view(func(txn *badger.Txn) (err error) {
		message, err = e.messages.Get(txn, messageID)
		return err
	})
	return message, err
}

// ListReplies returns the direct replies of a message, oldest first.
func (e *Engine) ListReplies(messageID uuid.UUID) ([]domain.Message, error) {
	var replies []domain.Message
	err := e.view(func(txn *badger.Txn) error {
		if _, err := e.messages.Get(txn, messageID); err != nil {
			return err
		}
		var err error
		replies, err = e.messages.ListReplies(txn, messageID)
		return err
	})
	return replies, err
}

// Thread materializes the reply tree below a message with a constant number of reads.
func (e *Engine) Thread(messageID uuid.UUID) (*projection.ThreadNode, error) {
	var root *projection.ThreadNode
	err := e.view(func(txn *badger.Txn) (err error) {
		root, err = e.threads.Materialize(txn, messageID)
		return err
	})
	return root, err
}

// Descendants lists every reply below a message, depth-first, without the message itself.
func (e *Engine) Descendants(messageID uuid.UUID) ([]domain.Message, error) {
	var replies []domain.Message
	err := e.view(func(txn *badger.Txn) error {
		message, err := e.messages.Get(txn, messageID)
		if err != nil {
			return err
		}
		thread, err := e.messages.ListThread(txn, message.ThreadID)
		if err != nil {
			return err
		}
		replies = projection.CollectReplies(thread, message.ID)
		return nil
	})
	return replies, err
}

// Unread returns the unread messages addressed to a user, oldest first.
func (e *Engine) Unread(userID uuid.UUID) ([]domain.MessageView, error) {
	var views []domain.MessageView
	err := e.view(func(txn *badger.Txn) (err error) {
		views, err = e.unread.UnreadForUser(txn, userID)
		return err
	})
	return views, err
}

func (e *Engine) Notifications(userID uuid.UUID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := e.view(func(txn *badger.Txn) (err error) {
		notifications, err = e.notifications.ListForUser(txn, userID)
		return err
	})
	return notifications, err
}

// History returns the superseded contents of a message, oldest first.
func (e *Engine) History(messageID uuid.UUID) ([]domain.MessageHistory, error) {
	var histories []domain.MessageHistory
	err := e.view(func(txn *badger.Txn) error {
		if _, err := e.messages.Get(txn, messageID); err != nil {
			return err
		}
		var err error
		histories, err = e.histories.ListForMessage(txn, messageID)
		return err
	})
	return histories, err
}

// Search runs a full-text query and re-reads every hit from the store.
// Hits whose message no longer exists are dropped.
func (e *Engine) Search(ctx context.Context, input string) ([]domain.MessageView, error) {
	if e.indexer == nil {
		return nil, nil
	}
	query := domainsearch.NewSearchQuery(input)
	if query.Terms == "" {
		return nil, fmt.Errorf("%w: empty search", errors.ErrInvalidCommand)
	}
	ids, err := e.indexer.Search(ctx, *query)
	if err != nil {
		e.stats.IncrSearchFailures()
		return nil, fmt.Errorf("%w: %w", errors.ErrStorageUnavailable, err)
	}

	var views []domain.MessageView
	err = e.view(func(txn *badger.Txn) error {
		hits := make([]domain.Message, 0, len(ids))
		for _, id := range ids {
			message, err := e.messages.Get(txn, id)
			if stderrors.Is(err, errors.ErrNotFound) {
				e.log.Debug("Stale search hit dropped", "message", id)
				continue
			}
			if err != nil {
				return err
			}
			hits = append(hits, message)
		}
		resolved, err := projection.ResolveViews(txn, e.users, hits)
		views = resolved
		return err
	})
	return views, err
}

func (e *Engine) refreshIndex(message domain.Message) {
	if e.indexer == nil {
		return
	}
	if err := e.indexer.Index(message); err != nil {
		e.stats.IncrSearchFailures()
		e.log.Error("Search index refresh failed", "message", message.ID, "error", err)
	}
}

func (e *Engine) removeFromIndex(ids ...uuid.UUID) {
	if e.indexer == nil || len(ids) == 0 {
		return
	}
	if err := e.indexer.Remove(ids...); err != nil {
		e.stats.IncrSearchFailures()
		e.log.Error("Search index removal failed", "count", len(ids), "error", err)
	}
}
