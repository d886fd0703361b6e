package main

import (
	"chat-thread/errors"
	"chat-thread/internal"
	"chat-thread/moderation"
	"chat-thread/observability"
	"chat-thread/pipeline"
	"chat-thread/search"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Render("Error: "+err.Error()))
		os.Exit(exitCode(err))
	}
}

// run wires the engine for a single command and closes every store before returning,
// so that deferred cleanups still run when the command fails.
func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("%w: missing command", errors.ErrInvalidCommand)
	}

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	censoredChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Search index (Bluge)
	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 4. Engine
	moderator, err := moderation.NewModerator(config.CensoredWords, censoredChar, log)
	if err != nil {
		return fmt.Errorf("moderator initialization failed: %w", err)
	}
	engine := pipeline.NewEngine(
		db,
		pipeline.NewRepositories(log),
		search.NewBlugeIndex(blugeWriter, log),
		moderator,
		observability.NewMonitoringManager(log),
		pipeline.Options{
			MaxContentLength: config.MaxContentLength,
			RetryAttempts:    config.RetryAttempts,
			RetryDelay:       config.RetryDelay,
			LimitMessages:    config.LimitMessages,
		},
		log,
	)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := newCLI(engine, os.Stdout)
	err = commands.dispatch(ctx, args[0], args[1:])
	log.Debug("Engine stats", "stats", engine.Stats())
	return err
}

// exitCode separates caller mistakes from storage failures.
func exitCode(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrInvalidCommand),
		stderrors.Is(err, errors.ErrInvalidReference),
		stderrors.Is(err, errors.ErrUserAlreadyExists):
		return 2
	case stderrors.Is(err, errors.ErrNotFound):
		return 3
	case stderrors.Is(err, errors.ErrConflictOnDelete),
		stderrors.Is(err, errors.ErrStorageUnavailable):
		return 4
	default:
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: chat-thread <command> [flags]

Commands:
  register     -name <username>
  send         -from <username> [-to <username>] -content <text>
  reply        -from <username> [-to <username>] -parent <message id> -content <text>
  edit         -id <message id> -content <text>
  read         -id <message id>
  delete       -id <message id>
  unread       -user <username>
  thread       -id <message id>
  history      -id <message id>
  search       <terms> [--thread <id>] [--limit n]
  delete-user  -user <username>`)
}
