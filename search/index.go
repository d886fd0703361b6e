//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../mocks/mock_indexer.go -package=mocks
package search

import (
	"chat-thread/domain"
	domainsearch "chat-thread/domain/search"
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis/analyzer"
	"github.com/google/uuid"
)

const (
	contentField = "content"
	threadField  = "thread"
	idField      = "_id"
)

// IIndexer is the full-text projection of message contents.
// It is refreshed after the owning transaction commits and is never the source of truth.
type IIndexer interface {
	Index(message domain.Message) error
	Remove(ids ...uuid.UUID) error
	Search(ctx context.Context, query domainsearch.Query) ([]uuid.UUID, error)
}

// Contents and queries go through the same analyzer so that case and stop words never decide a match.
var contentAnalyzer = analyzer.NewStandardAnalyzer()

type BlugeIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewBlugeIndex(writer *bluge.Writer, log *slog.Logger) *BlugeIndex {
	return &BlugeIndex{writer: writer, log: log}
}

// Index adds or replaces the document of a message.
func (b *BlugeIndex) Index(message domain.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField(contentField, message.Content).WithAnalyzer(contentAnalyzer)).
		AddField(bluge.NewKeywordField(threadField, message.ThreadID.String()))
	if err := b.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index message %s: %w", message.ID, err)
	}
	return nil
}

// Remove deletes documents in a single batch. Unknown IDs are ignored by Bluge.
func (b *BlugeIndex) Remove(ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	batch := bluge.NewBatch()
	for _, id := range ids {
		batch.Delete(bluge.Identifier(id.String()))
	}
	if err := b.writer.Batch(batch); err != nil {
		return fmt.Errorf("remove %d documents: %w", len(ids), err)
	}
	return nil
}

// Search returns the IDs of the best matching messages, best first.
func (b *BlugeIndex) Search(ctx context.Context, query domainsearch.Query) ([]uuid.UUID, error) {
	reader, err := b.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	var q bluge.Query = bluge.NewMatchQuery(query.Terms).
		SetField(contentField).
		SetAnalyzer(contentAnalyzer)
	if query.ThreadID != uuid.Nil {
		q = bluge.NewBooleanQuery().
			AddMust(q).
			AddMust(bluge.NewTermQuery(query.ThreadID.String()).SetField(threadField))
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Terms, err)
	}

	var ids []uuid.UUID
	match, err := iterator.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field != idField {
				return true
			}
			id, parseErr := uuid.ParseBytes(value)
			if parseErr != nil {
				b.log.Warn("Skipping document with foreign identifier", "id", string(value))
				return false
			}
			ids = append(ids, id)
			return false
		})
		if err != nil {
			break
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("iterate hits for %q: %w", query.Terms, err)
	}
	b.log.Debug("Search executed", "terms", query.Terms, "hits", len(ids))
	return ids, nil
}
