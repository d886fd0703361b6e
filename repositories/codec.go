package repositories

import (
	"chat-thread/domain"
	"chat-thread/errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored with the protobuf wire format so that fields can be
// added later without rewriting existing values. Unknown fields are skipped.

const (
	messageFieldID protowire.Number = iota + 1
	messageFieldSender
	messageFieldReceiver
	messageFieldParent
	messageFieldThread
	messageFieldContent
	messageFieldCreatedAt
	messageFieldEdited
	messageFieldRead
)

const (
	notificationFieldID protowire.Number = iota + 1
	notificationFieldUser
	notificationFieldMessage
	notificationFieldCreatedAt
)

const (
	historyFieldID protowire.Number = iota + 1
	historyFieldMessage
	historyFieldOldContent
	historyFieldEditedAt
)

const (
	userFieldID protowire.Number = iota + 1
	userFieldUsername
	userFieldCreatedAt
)

func marshalMessage(m domain.Message) []byte {
	var b []byte
	b = appendUUID(b, messageFieldID, m.ID)
	b = appendUUID(b, messageFieldSender, m.SenderID)
	b = appendUUID(b, messageFieldReceiver, m.ReceiverID)
	b = appendUUID(b, messageFieldParent, m.ParentID)
	b = appendUUID(b, messageFieldThread, m.ThreadID)
	b = appendString(b, messageFieldContent, m.Content)
	b = appendTime(b, messageFieldCreatedAt, m.CreatedAt)
	b = appendBool(b, messageFieldEdited, m.Edited)
	b = appendBool(b, messageFieldRead, m.Read)
	return b
}

func unmarshalMessage(b []byte) (domain.Message, error) {
	var m domain.Message
	err := decodeFields(b, func(num protowire.Number, s string, v uint64) error {
		var err error
		switch num {
		case messageFieldID:
			m.ID, err = parseUUID(s)
		case messageFieldSender:
			m.SenderID, err = parseUUID(s)
		case messageFieldReceiver:
			m.ReceiverID, err = parseUUID(s)
		case messageFieldParent:
			m.ParentID, err = parseUUID(s)
		case messageFieldThread:
			m.ThreadID, err = parseUUID(s)
		case messageFieldContent:
			m.Content = s
		case messageFieldCreatedAt:
			m.CreatedAt = toTime(v)
		case messageFieldEdited:
			m.Edited = protowire.DecodeBool(v)
		case messageFieldRead:
			m.Read = protowire.DecodeBool(v)
		}
		return err
	})
	return m, err
}

func marshalNotification(n domain.Notification) []byte {
	var b []byte
	b = appendUUID(b, notificationFieldID, n.ID)
	b = appendUUID(b, notificationFieldUser, n.UserID)
	b = appendUUID(b, notificationFieldMessage, n.MessageID)
	b = appendTime(b, notificationFieldCreatedAt, n.CreatedAt)
	return b
}

func unmarshalNotification(b []byte) (domain.Notification, error) {
	var n domain.Notification
	err := decodeFields(b, func(num protowire.Number, s string, v uint64) error {
		var err error
		switch num {
		case notificationFieldID:
			n.ID, err = parseUUID(s)
		case notificationFieldUser:
			n.UserID, err = parseUUID(s)
		case notificationFieldMessage:
			n.MessageID, err = parseUUID(s)
		case notificationFieldCreatedAt:
			n.CreatedAt = toTime(v)
		}
		return err
	})
	return n, err
}

func marshalHistory(h domain.MessageHistory) []byte {
	var b []byte
	b = appendUUID(b, historyFieldID, h.ID)
	b = appendUUID(b, historyFieldMessage, h.MessageID)
	b = appendString(b, historyFieldOldContent, h.OldContent)
	b = appendTime(b, historyFieldEditedAt, h.EditedAt)
	return b
}

func unmarshalHistory(b []byte) (domain.MessageHistory, error) {
	var h domain.MessageHistory
	err := decodeFields(b, func(num protowire.Number, s string, v uint64) error {
		var err error
		switch num {
		case historyFieldID:
			h.ID, err = parseUUID(s)
		case historyFieldMessage:
			h.MessageID, err = parseUUID(s)
		case historyFieldOldContent:
			h.OldContent = s
		case historyFieldEditedAt:
			h.EditedAt = toTime(v)
		}
		return err
	})
	return h, err
}

func marshalUser(u domain.User) []byte {
	var b []byte
	b = appendUUID(b, userFieldID, u.ID)
	b = appendString(b, userFieldUsername, u.Username)
	b = appendTime(b, userFieldCreatedAt, u.CreatedAt)
	return b
}

func unmarshalUser(b []byte) (domain.User, error) {
	var u domain.User
	err := decodeFields(b, func(num protowire.Number, s string, v uint64) error {
		var err error
		switch num {
		case userFieldID:
			u.ID, err = parseUUID(s)
		case userFieldUsername:
			u.Username = s
		case userFieldCreatedAt:
			u.CreatedAt = toTime(v)
		}
		return err
	})
	return u, err
}

// decodeFields walks every field of b. Length-delimited values are passed as s,
// varints as v. Other wire types are skipped.
func decodeFields(b []byte, fn func(num protowire.Number, s string, v uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			if err := fn(num, s, 0); err != nil {
				return err
			}
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			if err := fn(num, "", v); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

// uuid.Nil is not written, absent fields decode to uuid.Nil.
func appendUUID(b []byte, num protowire.Number, id uuid.UUID) []byte {
	if id == uuid.Nil {
		return b
	}
	return appendString(b, num, id.String())
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(t.UnixNano()))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errors.ErrCorruptedRecord, err)
	}
	return id, nil
}

func toTime(v uint64) time.Time {
	return time.Unix(0, int64(v)).UTC()
}
