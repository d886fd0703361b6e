package repositories

import (
	"chat-thread/domain"
	"chat-thread/errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func Test_Message_Codec_Keeps_Every_Field(t *testing.T) {
	req := require.New(t)
	message := domain.Message{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		ParentID:   uuid.New(),
		ThreadID:   uuid.New(),
		Content:    "Un été avec un badger",
		CreatedAt:  time.Now().UTC(),
		Edited:     true,
		Read:       true,
	}
	decoded, err := unmarshalMessage(marshalMessage(message))
	req.NoError(err)
	req.Equal(message, decoded)
}

func Test_Broadcast_Message_Decodes_Without_Receiver(t *testing.T) {
	req := require.New(t)
	id := uuid.New()
	message := domain.Message{ID: id, SenderID: uuid.New(), ThreadID: id, Content: "to everyone", CreatedAt: time.Now().UTC()}

	decoded, err := unmarshalMessage(marshalMessage(message))
	req.NoError(err)
	req.False(decoded.HasReceiver())
	req.True(decoded.IsRoot())
	req.Equal(message, decoded)
}

func Test_Codec_Skips_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	user := domain.User{ID: uuid.New(), Username: "alice", CreatedAt: time.Now().UTC()}
	b := marshalUser(user)
	b = protowire.AppendTag(b, 42, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 7)

	decoded, err := unmarshalUser(b)
	req.NoError(err)
	req.Equal(user, decoded)
}

func Test_Codec_Rejects_Corrupted_Records(t *testing.T) {
	req := require.New(t)

	_, err := unmarshalMessage([]byte{0xff, 0xff, 0xff})
	req.ErrorIs(err, errors.ErrCorruptedRecord)

	b := protowire.AppendTag(nil, historyFieldMessage, protowire.BytesType)
	b = protowire.AppendString(b, "not-a-uuid")
	_, err = unmarshalHistory(b)
	req.ErrorIs(err, errors.ErrCorruptedRecord)
}
