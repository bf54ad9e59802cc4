package merge

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateSyntax   = errors.New("merge: invalid template syntax")
	ErrMissingField     = errors.New("merge: missing field")
	ErrNoSubject        = errors.New("merge: no subject given")
	ErrRecipientMissing = errors.New("merge: recipient missing")
	ErrRecipientInvalid = errors.New("merge: invalid recipient address")
	ErrInvalidSender    = errors.New("merge: invalid sender address")
	ErrDuplicateColumn  = errors.New("merge: duplicate column")
	ErrReadRows         = errors.New("merge: failed to read rows")
	ErrAttachment       = errors.New("merge: failed to read attachment")
	ErrConnect          = errors.New("merge: failed to connect to provider")
	ErrNoConnector      = errors.New("merge: no connector configured")
)

// MissingFieldError reports a placeholder that names a field absent from the row.
// It matches ErrMissingField with errors.Is.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
