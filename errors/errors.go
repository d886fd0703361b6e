package errors

import "fmt"

var (
	ErrNotFound           = fmt.Errorf("not found")
	ErrInvalidReference   = fmt.Errorf("invalid reference")
	ErrConflictOnDelete   = fmt.Errorf("conflict on delete")
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCommand     = fmt.Errorf("invalid command")
	ErrCorruptedRecord    = fmt.Errorf("corrupted record")
)
