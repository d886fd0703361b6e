package projection

import (
	"chat-thread/domain"
	"chat-thread/repositories"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// UnreadIndex is not stored: it filters the receiver index of the message store at query time.
// Messages come back oldest first so a reader can catch up in order.
type UnreadIndex struct {
	messages      repositories.IMessageRepository
	users         repositories.IUserRepository
	log           *slog.Logger
	limitMessages *int
}

func NewUnreadIndex(
	messages repositories.IMessageRepository,
	users repositories.IUserRepository,
	log *slog.Logger,
	limitMessages *int,
) UnreadIndex {
	return UnreadIndex{messages: messages, users: users, log: log, limitMessages: limitMessages}
}

// UnreadForUser returns the unread messages addressed to the user.
// When limitMessages is configured the receiver index scan stops as soon as that many are found.
func (u UnreadIndex) UnreadForUser(txn *badger.Txn, userID uuid.UUID) ([]domain.MessageView, error) {
	limit := 0
	if u.limitMessages != nil {
		if *u.limitMessages <= 0 {
			return nil, nil
		}
		limit = *u.limitMessages
	}
	unread, err := u.messages.ListUnread(txn, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unread messages of %s: %w", userID, err)
	}
	if limit > 0 && len(unread) == limit {
		u.log.Debug(fmt.Sprintf("Maximum of %d unread messages reached", limit))
	}
	return ResolveViews(txn, u.users, unread)
}

// ResolveViews attaches sender and receiver identities with one batched lookup.
func ResolveViews(txn *badger.Txn, users repositories.IUserRepository, messages []domain.Message) ([]domain.MessageView, error) {
	ids := lo.Uniq(lo.FlatMap(messages, func(m domain.Message, _ int) []uuid.UUID {
		return []uuid.UUID{m.SenderID, m.ReceiverID}
	}))
	resolved, err := users.GetMany(txn, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return lo.Map(messages, func(m domain.Message, _ int) domain.MessageView {
		view := domain.MessageView{Message: m, Sender: resolved[m.SenderID]}
		if receiver, ok := resolved[m.ReceiverID]; ok {
			view.Receiver = lo.ToPtr(receiver)
		}
		return view
	}), nil
}
