package search

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const defaultLimit = 10

// Query represents the structured parameters of a message search.
// It decouples the raw operator input from the index requirements.
type Query struct {
	RawInput string    // The original input
	Terms    string    // The actual text to search in Bluge
	ThreadID uuid.UUID // Restricts hits to one thread when set
	Limit    int       // Maximum number of hits
}

// NewSearchQuery parses a raw string to extract command-line style arguments.
// Example: /find "invoice" --thread 5f0c... --limit 5
// Unknown flags and unparsable values are ignored.
func NewSearchQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    defaultLimit,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		// Handle flags like --thread <uuid> or --limit 5
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "thread":
				if id, err := uuid.Parse(val); err == nil {
					query.ThreadID = id
				}
			case "limit":
				if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
					query.Limit = limit
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		// If it's not a flag, it's a search term
		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, strings.Trim(part, `"`))
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
