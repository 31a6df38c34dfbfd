// Package errors provides structured error handling with i18n support.
package errors

// Error is a domain error carrying a machine-readable code and optional
// metadata for message formatting.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
}

// New creates a domain error with the given code and developer-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithMetadata returns a copy of the error carrying formatting metadata.
// The receiver is not mutated so package-level sentinel errors stay immutable.
func (e *Error) WithMetadata(metadata map[string]string) *Error {
	clone := &Error{Code: e.Code, Message: e.Message}
	if len(metadata) > 0 {
		clone.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}

// Is reports whether target is a domain error with the same code, so that
// sentinel errors compare equal to their WithMetadata copies.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
