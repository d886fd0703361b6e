package chat

import (
	"chat-thread/errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Timestamps are stored as nanoseconds since the Unix epoch in sortable keys.
var (
	minCreatedAt = time.Unix(0, 0)
	maxCreatedAt = time.Unix(0, math.MaxInt64)
)

// SendMessageCommand creates a root message when ParentID is nil, a reply otherwise.
// Identities are already authenticated by the caller.
type SendMessageCommand struct {
	SenderID   uuid.UUID `validate:"required"`
	ReceiverID *uuid.UUID
	ParentID   *uuid.UUID
	Content    string `validate:"required"`
	CreatedAt  time.Time
}

type EditMessageCommand struct {
	MessageID uuid.UUID `validate:"required"`
	Content   string    `validate:"required"`
}

type RegisterUserCommand struct {
	Username string `validate:"required,min=2,max=64,alphanum"`
}

// Validate checks struct tags, the creation time when one is given, then the content length limit.
// maxContentLength <= 0 disables the limit.
func (c SendMessageCommand) Validate(maxContentLength int) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	if !c.CreatedAt.IsZero() && (c.CreatedAt.Before(minCreatedAt) || c.CreatedAt.After(maxCreatedAt)) {
		return fmt.Errorf("%w: created at %s is outside %d..%d",
			errors.ErrInvalidCommand, c.CreatedAt.Format(time.RFC3339), minCreatedAt.Year(), maxCreatedAt.Year())
	}
	return validateContent(c.Content, maxContentLength)
}

func (c EditMessageCommand) Validate(maxContentLength int) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	return validateContent(c.Content, maxContentLength)
}

func (c RegisterUserCommand) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	return nil
}

func validateContent(content string, maxContentLength int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is blank", errors.ErrInvalidCommand)
	}
	if maxContentLength > 0 && len([]rune(content)) > maxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", errors.ErrInvalidCommand, maxContentLength)
	}
	return nil
}
