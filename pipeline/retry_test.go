package pipeline

import (
	"chat-thread/domain/chat"
	"chat-thread/errors"
	"chat-thread/mocks"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEngine_Retry(t *testing.T) {
	t.Run("should give up after the configured attempts on repeated conflicts", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(badger.ErrConflict).Times(3)

		repos := NewRepositories(newTestLogger())
		repos.Users = users
		engine := newTestEngine(t, newTestDB(t), repos, nil, Options{RetryAttempts: 3, RetryDelay: time.Millisecond})

		_, err := engine.RegisterUser(context.Background(), chat.RegisterUserCommand{Username: "alice"})
		req.ErrorIs(err, errors.ErrStorageUnavailable)
		req.ErrorIs(err, badger.ErrConflict)
		req.EqualValues(3, engine.Stats().ConflictsRetried)
	})

	t.Run("should succeed when a retry goes through", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		gomock.InOrder(
			users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(badger.ErrConflict),
			users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)

		repos := NewRepositories(newTestLogger())
		repos.Users = users
		engine := newTestEngine(t, newTestDB(t), repos, nil, Options{RetryAttempts: 3, RetryDelay: time.Millisecond})

		user, err := engine.RegisterUser(context.Background(), chat.RegisterUserCommand{Username: "alice"})
		req.NoError(err)
		req.Equal("alice", user.Username)
		req.EqualValues(1, engine.Stats().ConflictsRetried)
	})

	t.Run("should not retry a domain error", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.ErrUserAlreadyExists).Times(1)

		repos := NewRepositories(newTestLogger())
		repos.Users = users
		engine := newTestEngine(t, newTestDB(t), repos, nil, testOptions)

		_, err := engine.RegisterUser(context.Background(), chat.RegisterUserCommand{Username: "alice"})
		req.ErrorIs(err, errors.ErrUserAlreadyExists)
		req.EqualValues(0, engine.Stats().ConflictsRetried)
	})
}

func TestEngine_Send_Rollback(t *testing.T) {
	t.Run("should leave no message behind when the notification cannot be written", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		db := newTestDB(t)
		repos := NewRepositories(newTestLogger())
		engine := newTestEngine(t, db, repos, nil, testOptions)
		alice := register(t, engine, "alice")
		bob := register(t, engine, "bob")

		notifications := mocks.NewMockINotificationRepository(ctrl)
		notifications.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(stderrors.New("disk full")).
			Times(1)
		repos.Notifications = notifications
		failing := newTestEngine(t, db, repos, nil, testOptions)

		_, err := failing.Send(context.Background(), chat.SendMessageCommand{
			SenderID:   alice.ID,
			ReceiverID: lo.ToPtr(bob.ID),
			Content:    "hi",
		})
		req.ErrorIs(err, errors.ErrStorageUnavailable)

		req.Empty(keysWithPrefix(t, db, "msg:"))
		req.Empty(keysWithPrefix(t, db, "idx:receiver:"))
		req.Empty(keysWithPrefix(t, db, "act:"))
		unread, err := engine.Unread(bob.ID)
		req.NoError(err)
		req.Empty(unread)
	})

	t.Run("should not touch storage when the command is invalid", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		users.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
		messages.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		repos := NewRepositories(newTestLogger())
		repos.Users = users
		repos.Messages = messages
		engine := newTestEngine(t, newTestDB(t), repos, nil, testOptions)

		_, err := engine.Send(context.Background(), chat.SendMessageCommand{SenderID: uuid.New(), Content: ""})
		req.ErrorIs(err, errors.ErrInvalidCommand)
	})
}

func TestEngine_History_Rollback(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	db := newTestDB(t)
	repos := NewRepositories(newTestLogger())
	engine := newTestEngine(t, db, repos, nil, testOptions)
	alice := register(t, engine, "alice")
	root := send(t, engine, alice.ID, uuid.Nil, nil, "hi")

	histories := mocks.NewMockIHistoryRepository(ctrl)
	histories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(stderrors.New("disk full")).Times(1)
	repos.Histories = histories
	failing := newTestEngine(t, db, repos, nil, testOptions)

	_, err := failing.EditContent(context.Background(), chat.EditMessageCommand{MessageID: root.ID, Content: "hey"})
	req.ErrorIs(err, errors.ErrStorageUnavailable)

	stored, err := engine.Get(root.ID)
	req.NoError(err)
	req.Equal("hi", stored.Content)
	req.False(stored.Edited)
}

func TestEngine_Search_Index(t *testing.T) {
	t.Run("should drop hits whose message is gone", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		indexer := mocks.NewMockIIndexer(ctrl)
		indexer.EXPECT().Index(gomock.Any()).Return(nil).AnyTimes()

		engine := newTestEngine(t, newTestDB(t), NewRepositories(newTestLogger()), indexer, testOptions)
		alice := register(t, engine, "alice")
		message := send(t, engine, alice.ID, uuid.Nil, nil, "invoice")

		indexer.EXPECT().
			Search(gomock.Any(), gomock.Any()).
			Return([]uuid.UUID{uuid.New(), message.ID}, nil).
			Times(1)

		views, err := engine.Search(context.Background(), "invoice")
		req.NoError(err)
		req.Len(views, 1)
		req.Equal(message.ID, views[0].ID)
	})

	t.Run("should report an unavailable index", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		indexer := mocks.NewMockIIndexer(ctrl)
		indexer.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, stderrors.New("index closed")).Times(1)

		engine := newTestEngine(t, newTestDB(t), NewRepositories(newTestLogger()), indexer, testOptions)

		_, err := engine.Search(context.Background(), "invoice")
		req.ErrorIs(err, errors.ErrStorageUnavailable)
		req.EqualValues(1, engine.Stats().SearchFailures)
	})

	t.Run("should keep the message when the index refresh fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		indexer := mocks.NewMockIIndexer(ctrl)
		indexer.EXPECT().Index(gomock.Any()).Return(stderrors.New("index closed")).Times(1)
		indexer.EXPECT().Remove(gomock.Any()).Return(nil).Times(1)

		engine := newTestEngine(t, newTestDB(t), NewRepositories(newTestLogger()), indexer, testOptions)
		alice := register(t, engine, "alice")

		message := send(t, engine, alice.ID, uuid.Nil, nil, "invoice")
		stored, err := engine.Get(message.ID)
		req.NoError(err)
		req.Equal(message.Content, stored.Content)
		req.EqualValues(1, engine.Stats().SearchFailures)

		deleted, err := engine.DeleteMessage(context.Background(), message.ID)
		req.NoError(err)
		req.Equal([]uuid.UUID{message.ID}, deleted)
	})
}

func Test_Classify(t *testing.T) {
	req := require.New(t)
	req.NoError(classify(nil))
	req.ErrorIs(classify(errors.ErrNotFound), errors.ErrNotFound)
	req.ErrorIs(classify(context.Canceled), context.Canceled)

	wrapped := classify(badger.ErrDBClosed)
	req.ErrorIs(wrapped, errors.ErrStorageUnavailable)
	req.ErrorIs(wrapped, badger.ErrDBClosed)

}
