package sophosxg

import "fmt"

// MissingFieldError is returned when a required entity field has no value and
// no default at serialization time. The request is never sent to the appliance.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %s has no value", e.Entity, e.Field)
}

// AuthenticationError is returned when the appliance rejects the session
// credentials. Status carries the appliance's literal login status text.
type AuthenticationError struct {
	Status string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Status)
}

// OperationError is returned when the appliance authenticates the request but
// rejects or fails the operation itself, e.g. a duplicate name or an invalid
// reference. Code and Message carry the appliance's own status code and text
// verbatim so callers can key off them.
type OperationError struct {
	Entity  string
	Code    string
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: error code %s: %s", e.Entity, e.Code, e.Message)
}

// TransportError wraps a network or TLS level failure from the transport
// collaborator. The underlying error is available via Unwrap.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is returned when the response bytes do not conform to the
// expected envelope shape. Raw holds the unmodified payload for diagnosis.
type ParseError struct {
	Raw []byte
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
