package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordSummary is a human readable line describing one raw Badger entry.
type RecordSummary struct {
	Key       string
	Type      string
	Timestamp string
	EntityID  string
	Detail    string
}

// DescribeRecord decodes a raw key/value pair written by this package.
// Unknown or undecodable entries are reported as RAW instead of failing.
func DescribeRecord(key string, value []byte) RecordSummary {
	row := RecordSummary{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Detail:    "Size: " + strconv.Itoa(len(value)) + " bytes",
	}
	prefix, _, _ := strings.Cut(key, ":")

	switch prefix {
	case "msg":
		m, err := unmarshalMessage(value)
		if err != nil {
			return row
		}
		row.Type = "MESSAGE"
		row.Timestamp = m.CreatedAt.Format(time.TimeOnly)
		row.EntityID = shortID(m.ID.String())
		row.Detail = fmt.Sprintf("%q edited=%t read=%t thread=%s", m.Content, m.Edited, m.Read, shortID(m.ThreadID.String()))
	case "notif":
		n, err := unmarshalNotification(value)
		if err != nil {
			return row
		}
		row.Type = "NOTIFICATION"
		row.Timestamp = n.CreatedAt.Format(time.TimeOnly)
		row.EntityID = shortID(n.ID.String())
		row.Detail = fmt.Sprintf("user=%s message=%s", shortID(n.UserID.String()), shortID(n.MessageID.String()))
	case "hist":
		h, err := unmarshalHistory(value)
		if err != nil {
			return row
		}
		row.Type = "HISTORY"
		row.Timestamp = h.EditedAt.Format(time.TimeOnly)
		row.EntityID = shortID(h.ID.String())
		row.Detail = fmt.Sprintf("message=%s old=%q", shortID(h.MessageID.String()), h.OldContent)
	case "user":
		u, err := unmarshalUser(value)
		if err != nil {
			return row
		}
		row.Type = "USER"
		row.Timestamp = u.CreatedAt.Format(time.TimeOnly)
		row.EntityID = shortID(u.ID.String())
		row.Detail = u.Username
	case "idx":
		// idx:{name}:{owner}:{nanos}:{id}
		parts := strings.Split(key, ":")
		row.Type = "INDEX"
		if len(parts) == 5 {
			if nanos, err := strconv.ParseInt(parts[3], 10, 64); err == nil {
				row.Timestamp = time.Unix(0, nanos).UTC().Format(time.TimeOnly)
			}
			row.EntityID = shortID(parts[4])
			row.Detail = parts[1] + " of " + shortID(parts[2])
		} else if len(parts) == 3 {
			row.Detail = parts[1] + " " + parts[2] + " -> " + shortID(string(value))
		}
	case "act":
		row.Type = "ACTIVITY"
		row.EntityID = shortID(strings.TrimPrefix(key, "act:"))
		row.Detail = "last write " + shortID(string(value))
	}
	return row
}

// shortID keeps the first 8 characters for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
