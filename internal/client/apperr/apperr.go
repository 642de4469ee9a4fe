// Package apperr classifies failures of the client core into a small
// taxonomy that the presentation layer can render without interpreting them.
//
// # Kinds
//
//   - KindValidation: field-scoped, produced locally, never sent over the wire.
//   - KindDomain:     acknowledged by the server (or local rules), the message is
//     safe to show as is.
//   - KindUnknown:    anything else; the message is replaced by a fallback.
//   - KindBusy:       rejected because a conflicting operation is in flight.
//
// Classification happens once, at the boundary nearest the failure. Classify
// returns already-classified values unchanged.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is the classification of a failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDomain     Kind = "domain"
	KindUnknown    Kind = "unknown"
	KindBusy       Kind = "busy"
)

// Severity tells the notification sink how to render a message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Fallback messages used when the cause of a failure must not be shown.
const (
	FallbackUnexpected      = "An unexpected error occurred. Please try again later."
	FallbackSignIn          = "Unable to sign in. Please try again later."
	FallbackSignUp          = "Unable to create the account. Please try again later."
	FallbackProfileUpdate   = "Unable to update the profile."
	FallbackGroups          = "Unable to load the muscle groups."
	FallbackExercises       = "Unable to load the exercises."
	FallbackExercise        = "Unable to load the exercise details."
	FallbackHistory         = "Unable to load the exercise history."
	FallbackHistoryRegister = "Unable to register the exercise."
	FallbackSessionSave     = "Signed in, but the session could not be saved on this device."
	MessageBusy             = "Another operation is in progress. Please wait."
	MessageImageTooLarge    = "The image must be at most 5MB."
)

// ErrBusy is matched with errors.Is by callers that need to detect a busy
// rejection regardless of its message.
var ErrBusy = errors.New("operation in progress")

// Error is a classified failure.
type Error struct {
	Kind     Kind
	Severity Severity
	Message  string
	// Fields maps a form field name to its message (KindValidation only).
	Fields map[string]string
	// Err is the underlying cause, kept for logging; never shown.
	Err error
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
		}
		return strings.Join(parts, "; ")
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBusy) true for busy rejections.
func (e *Error) Is(target error) bool {
	return target == ErrBusy && e.Kind == KindBusy
}

// Domain returns a server- or rule-originated error whose message is shown to the user.
func Domain(message string) *Error {
	return &Error{Kind: KindDomain, Severity: SeverityError, Message: message}
}

// Unknown wraps err; the user sees fallback only.
func Unknown(err error, fallback string) *Error {
	return &Error{Kind: KindUnknown, Severity: SeverityError, Message: fallback, Err: err}
}

// Busy returns a busy rejection for the named operation.
func Busy(op string) *Error {
	return &Error{Kind: KindBusy, Severity: SeverityWarning, Message: MessageBusy, Err: fmt.Errorf("%s: %w", op, ErrBusy)}
}

// Validation returns a field-keyed validation failure. fields must not be empty.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Severity: SeverityError, Message: "validation failed", Fields: fields}
}

// Warning returns an Unknown-kind error with warning severity. It is used
// for failures that do not undo the operation they follow.
func Warning(err error, message string) *Error {
	return &Error{Kind: KindUnknown, Severity: SeverityWarning, Message: message, Err: err}
}

// Classify turns any error into a classified *Error. Already classified
// errors (anywhere in the chain) are returned unchanged; everything else
// becomes KindUnknown with the fallback message. Classify(nil) returns nil.
func Classify(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Unknown(err, fallback)
}

// Field returns the validation message for name, or "" if name is valid.
func Field(err error, name string) string {
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind != KindValidation {
		return ""
	}
	return ae.Fields[name]
}
