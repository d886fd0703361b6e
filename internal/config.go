package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath    string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=2000"`
	LimitMessages    *int          `env:"LIMIT_MESSAGES"`
	RetryAttempts    int           `env:"RETRY_ATTEMPTS,default=3"`
	RetryDelay       time.Duration `env:"RETRY_DELAY,default=50ms"`
	CensoredWords    []string      `env:"CENSORED_WORDS"`
	CharReplacement  string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
