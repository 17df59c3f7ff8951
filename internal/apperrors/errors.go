package apperrors

import "fmt"

// ErrProviderUnavailable represents a single provider's search, details or
// episode call failing or timing out. It is always recovered locally and
// never aborts a resolution.
type ErrProviderUnavailable struct {
	Provider  string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *ErrProviderUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s unavailable during %s: %v", e.Provider, e.Operation, e.Cause)
	}
	return fmt.Sprintf("provider %s unavailable during %s", e.Provider, e.Operation)
}

// Is allows for error checking with errors.Is().
func (e *ErrProviderUnavailable) Is(target error) bool {
	_, ok := target.(*ErrProviderUnavailable)
	return ok
}

// Unwrap exposes the underlying cause for errors.As().
func (e *ErrProviderUnavailable) Unwrap() error { return e.Cause }

// NewProviderUnavailableError creates a new ErrProviderUnavailable.
func NewProviderUnavailableError(provider, operation string, cause error) *ErrProviderUnavailable {
	return &ErrProviderUnavailable{
		Provider:  provider,
		Operation: operation,
		Cause:     cause,
	}
}

// ErrPrimarySourceFailure is returned when the primary provider's own
// details or episode fetch fails. That data is mandatory, so this is the
// only provider failure that surfaces to the caller.
type ErrPrimarySourceFailure struct {
	Provider string
	MediaID  string
	Cause    error
}

// Error implements the error interface.
func (e *ErrPrimarySourceFailure) Error() string {
	return fmt.Sprintf("primary provider %s failed for media %s: %v", e.Provider, e.MediaID, e.Cause)
}

// Is allows for error checking with errors.Is().
func (e *ErrPrimarySourceFailure) Is(target error) bool {
	_, ok := target.(*ErrPrimarySourceFailure)
	return ok
}

// Unwrap exposes the underlying cause for errors.As().
func (e *ErrPrimarySourceFailure) Unwrap() error { return e.Cause }

// NewPrimarySourceFailureError creates a new primary source failure error.
func NewPrimarySourceFailureError(provider, mediaID string, cause error) *ErrPrimarySourceFailure {
	return &ErrPrimarySourceFailure{
		Provider: provider,
		MediaID:  mediaID,
		Cause:    cause,
	}
}

// ErrUnknownProvider is returned when an operation names a provider that is
// not present in the registry.
type ErrUnknownProvider struct {
	Provider string
}

// Error implements the error interface.
func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("provider %q is not registered", e.Provider)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnknownProvider) Is(target error) bool {
	_, ok := target.(*ErrUnknownProvider)
	return ok
}

// ErrMalformedCandidate marks a search candidate missing required fields.
// Such candidates are skipped during scoring, never propagated.
type ErrMalformedCandidate struct {
	Provider string
	Reason   string
}

// Error implements the error interface.
func (e *ErrMalformedCandidate) Error() string {
	return fmt.Sprintf("malformed candidate from provider %s: %s", e.Provider, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedCandidate) Is(target error) bool {
	_, ok := target.(*ErrMalformedCandidate)
	return ok
}
