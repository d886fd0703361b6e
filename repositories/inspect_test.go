package repositories

import (
	"chat-thread/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_DescribeRecord(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 10, 11, 12, 0, time.UTC)
	id := uuid.New()
	message := domain.Message{ID: id, SenderID: uuid.New(), ThreadID: id, Content: "hi", CreatedAt: at}

	row := DescribeRecord(string(messageKey(id)), marshalMessage(message))
	req.Equal("MESSAGE", row.Type)
	req.Equal("10:11:12", row.Timestamp)
	req.Equal(id.String()[:8], row.EntityID)
	req.Contains(row.Detail, `"hi"`)

	index := string(indexKey("receiver", uuid.New(), at, id))
	row = DescribeRecord(index, nil)
	req.Equal("INDEX", row.Type)
	req.Equal("10:11:12", row.Timestamp)
	req.Contains(row.Detail, "receiver of")

	row = DescribeRecord("msg:broken", []byte{0xff})
	req.Equal("RAW", row.Type)
	req.Equal("Size: 1 bytes", row.Detail)
}

func Test_DescribeRecord_Activity(t *testing.T) {
	id := uuid.New()
	row := DescribeRecord(string(activityKey(id)), []byte(uuid.NewString()))
	require.Equal(t, "ACTIVITY", row.Type)
	require.Equal(t, id.String()[:8], row.EntityID)
}
