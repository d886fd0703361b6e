package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewSearchQuery(t *testing.T) {
	threadID := uuid.New()
	tests := []struct {
		name     string
		input    string
		terms    string
		threadID uuid.UUID
		limit    int
	}{
		{"Plain terms", "quarterly invoice", "quarterly invoice", uuid.Nil, defaultLimit},
		{"Quoted term", `"invoice"`, "invoice", uuid.Nil, defaultLimit},
		{"Command prefix ignored", "/find invoice", "invoice", uuid.Nil, defaultLimit},
		{"Thread filter", "invoice --thread " + threadID.String(), "invoice", threadID, defaultLimit},
		{"Limit", "invoice --limit 3", "invoice", uuid.Nil, 3},
		{"Invalid limit ignored", "invoice --limit -3", "invoice", uuid.Nil, defaultLimit},
		{"Invalid thread ignored", "invoice --thread nope", "invoice", uuid.Nil, defaultLimit},
		{"Unknown flag skipped with its value", "invoice --color red", "invoice", uuid.Nil, defaultLimit},
		{"Flags only", "--limit 2", "", uuid.Nil, 2},
		{"Trailing flag kept as a term", "invoice --limit", "invoice --limit", uuid.Nil, defaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := NewSearchQuery(tt.input)
			require.Equal(t, tt.input, query.RawInput)
			require.Equal(t, tt.terms, query.Terms)
			require.Equal(t, tt.threadID, query.ThreadID)
			require.Equal(t, tt.limit, query.Limit)
		})
	}
}
