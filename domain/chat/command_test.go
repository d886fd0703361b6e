package chat

import (
	"chat-thread/errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestSendMessageCommand_Validate(t *testing.T) {
	sender := uuid.New()
	tests := []struct {
		name    string
		cmd     SendMessageCommand
		max     int
		wantErr bool
	}{
		{"Root message", SendMessageCommand{SenderID: sender, Content: "hi"}, 10, false},
		{"Reply with receiver", SendMessageCommand{SenderID: sender, ReceiverID: lo.ToPtr(uuid.New()), ParentID: lo.ToPtr(uuid.New()), Content: "hi"}, 10, false},
		{"Missing sender", SendMessageCommand{Content: "hi"}, 10, true},
		{"Empty content", SendMessageCommand{SenderID: sender}, 10, true},
		{"Blank content", SendMessageCommand{SenderID: sender, Content: " \n\t"}, 10, true},
		{"Content at the limit", SendMessageCommand{SenderID: sender, Content: strings.Repeat("é", 10)}, 10, false},
		{"Content over the limit", SendMessageCommand{SenderID: sender, Content: strings.Repeat("a", 11)}, 10, true},
		{"No limit", SendMessageCommand{SenderID: sender, Content: strings.Repeat("a", 5000)}, 0, false},
		{"Given creation time", SendMessageCommand{SenderID: sender, Content: "hi", CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}, 10, false},
		{"Creation time at the epoch", SendMessageCommand{SenderID: sender, Content: "hi", CreatedAt: time.Unix(0, 0)}, 10, false},
		{"Creation time before 1970", SendMessageCommand{SenderID: sender, Content: "hi", CreatedAt: time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC)}, 10, true},
		{"Creation time after 2262", SendMessageCommand{SenderID: sender, Content: "hi", CreatedAt: time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate(tt.max)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrInvalidCommand)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEditMessageCommand_Validate(t *testing.T) {
	req := require.New(t)
	req.NoError(EditMessageCommand{MessageID: uuid.New(), Content: "hey"}.Validate(10))
	req.ErrorIs(EditMessageCommand{Content: "hey"}.Validate(10), errors.ErrInvalidCommand)
	req.ErrorIs(EditMessageCommand{MessageID: uuid.New(), Content: "  "}.Validate(10), errors.ErrInvalidCommand)
	req.ErrorIs(EditMessageCommand{MessageID: uuid.New(), Content: "far too long"}.Validate(10), errors.ErrInvalidCommand)
}

func TestRegisterUserCommand_Validate(t *testing.T) {
	req := require.New(t)
	req.NoError(RegisterUserCommand{Username: "alice42"}.Validate())
	req.ErrorIs(RegisterUserCommand{Username: ""}.Validate(), errors.ErrInvalidCommand)
	req.ErrorIs(RegisterUserCommand{Username: "a"}.Validate(), errors.ErrInvalidCommand)
	req.ErrorIs(RegisterUserCommand{Username: "alice smith"}.Validate(), errors.ErrInvalidCommand)
	req.ErrorIs(RegisterUserCommand{Username: strings.Repeat("a", 65)}.Validate(), errors.ErrInvalidCommand)
}
