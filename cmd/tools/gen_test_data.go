package main

import (
	"chat-thread/domain"
	"chat-thread/domain/chat"
	"chat-thread/pipeline"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

var sentences = []string{
	"Can we move the standup to ten?",
	"The invoice for March is attached",
	"Deploy went fine, monitoring now",
	"Who owns the flaky integration test?",
	"Lunch at noon on Friday",
	"Budget review is postponed",
	"Please check the release notes",
	"Thanks, looks good to me",
}

// Seeds a Badger directory with users and reply trees, written through the engine
// so that notifications and indexes stay consistent with the messages.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	users := flag.Int("users", 5, "Number of users")
	threads := flag.Int("threads", 20, "Number of threads")
	depth := flag.Int("depth", 4, "Maximum reply depth")
	branching := flag.Int("branching", 3, "Maximum replies per message")
	edits := flag.Float64("edits", 0.2, "Share of messages edited once")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	if err := seedData(*dbPath, *users, *threads, *depth, *branching, *edits, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func seedData(path string, userCount, threadCount, maxDepth, maxBranching int, editShare float64, seed int64) error {
	log := logs.GetLoggerFromLevel(slog.LevelWarn)
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	engine := pipeline.NewEngine(db, pipeline.NewRepositories(log), nil, nil, nil, pipeline.Options{
		RetryAttempts: 3,
		RetryDelay:    10 * time.Millisecond,
	}, log)
	rng := rand.New(rand.NewSource(seed))

	fmt.Printf("🚀 Seeding %s (seed %d)\n", path, seed)
	users := make([]domain.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user, err := engine.RegisterUser(ctx, chat.RegisterUserCommand{Username: fmt.Sprintf("user%d%d", seed%1000, i)})
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	var created []domain.Message
	for i := 0; i < threadCount; i++ {
		root, err := sendRandom(ctx, engine, rng, users, nil)
		if err != nil {
			return err
		}
		level := []domain.Message{root}
		created = append(created, root)
		for d := 1; d <= maxDepth; d++ {
			var next []domain.Message
			for j := range level {
				replies := rng.Intn(maxBranching + 1)
				for r := 0; r < replies; r++ {
					reply, err := sendRandom(ctx, engine, rng, users, &level[j])
					if err != nil {
						return err
					}
					next = append(next, reply)
				}
			}
			created = append(created, next...)
			level = next
		}
	}

	edited := 0
	for _, m := range created {
		if rng.Float64() >= editShare {
			continue
		}
		content := m.Content + " (updated)"
		if _, err := engine.EditContent(ctx, chat.EditMessageCommand{MessageID: m.ID, Content: content}); err != nil {
			return err
		}
		edited++
	}

	fmt.Printf("✅ %d users, %d threads, %d messages, %d edits\n", len(users), threadCount, len(created), edited)
	return nil
}

func sendRandom(ctx context.Context, engine *pipeline.Engine, rng *rand.Rand, users []domain.User, parent *domain.Message) (domain.Message, error) {
	sender := users[rng.Intn(len(users))]
	cmd := chat.SendMessageCommand{
		SenderID: sender.ID,
		Content:  sentences[rng.Intn(len(sentences))],
	}
	// One message out of four is a broadcast
	if rng.Intn(4) > 0 {
		receiver := users[rng.Intn(len(users))]
		if receiver.ID != sender.ID {
			cmd.ReceiverID = lo.ToPtr(receiver.ID)
		}
	}
	if parent != nil {
		cmd.ParentID = lo.ToPtr(parent.ID)
	}
	message, err := engine.Send(ctx, cmd)
	if err != nil {
		return domain.Message{}, fmt.Errorf("send: %w", err)
	}
	return message, nil
}
