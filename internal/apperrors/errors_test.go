// Package apperrors tests verify the custom error types
// (ErrProviderUnavailable, ErrPrimarySourceFailure, ErrUnknownProvider,
// ErrMalformedCandidate), their Error() messages, Is() matching semantics,
// and compatibility with errors.Is() including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrProviderUnavailable
// ---------------------------------------------------------------------------

func TestErrProviderUnavailable_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrProviderUnavailable
		expected string
	}{
		{
			name:     "with cause",
			err:      &ErrProviderUnavailable{Provider: "anilist", Operation: "search", Cause: errors.New("connection refused")},
			expected: "provider anilist unavailable during search: connection refused",
		},
		{
			name:     "without cause",
			err:      &ErrProviderUnavailable{Provider: "kitsu", Operation: "episodes"},
			expected: "provider kitsu unavailable during episodes",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrProviderUnavailable_Is(t *testing.T) {
	t.Parallel()
	err := NewProviderUnavailableError("anilist", "search", errors.New("timeout"))

	t.Run("matches another ErrProviderUnavailable", func(t *testing.T) {
		target := &ErrProviderUnavailable{}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrProviderUnavailable")
		}
	})

	t.Run("matches regardless of field values", func(t *testing.T) {
		target := &ErrProviderUnavailable{Provider: "other", Operation: "details"}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrProviderUnavailable regardless of field values")
		}
	})

	t.Run("does not match ErrPrimarySourceFailure", func(t *testing.T) {
		target := &ErrPrimarySourceFailure{}
		if errors.Is(err, target) {
			t.Error("expected errors.Is not to match *ErrPrimarySourceFailure")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("resolution failed: %w", err)
		if !errors.Is(wrapped, &ErrProviderUnavailable{}) {
			t.Error("expected errors.Is to match wrapped *ErrProviderUnavailable")
		}
	})
}

func TestErrProviderUnavailable_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("dns failure")
	err := NewProviderUnavailableError("tmdb", "search", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see the wrapped cause")
	}
}

// ---------------------------------------------------------------------------
// ErrPrimarySourceFailure
// ---------------------------------------------------------------------------

func TestErrPrimarySourceFailure_Error(t *testing.T) {
	t.Parallel()
	err := &ErrPrimarySourceFailure{Provider: "tmdb", MediaID: "1429", Cause: errors.New("503")}
	expected := "primary provider tmdb failed for media 1429: 503"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestErrPrimarySourceFailure_Is(t *testing.T) {
	t.Parallel()
	err := &ErrPrimarySourceFailure{Provider: "tmdb", MediaID: "1", Cause: errors.New("boom")}

	if !errors.Is(err, &ErrPrimarySourceFailure{}) {
		t.Error("expected errors.Is to match *ErrPrimarySourceFailure")
	}
	if errors.Is(err, &ErrUnknownProvider{}) {
		t.Error("expected errors.Is not to match *ErrUnknownProvider")
	}
}

// ---------------------------------------------------------------------------
// ErrUnknownProvider
// ---------------------------------------------------------------------------

func TestErrUnknownProvider_Error(t *testing.T) {
	t.Parallel()
	err := &ErrUnknownProvider{Provider: "simkl"}
	expected := `provider "simkl" is not registered`
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestErrUnknownProvider_Is(t *testing.T) {
	t.Parallel()
	err := &ErrUnknownProvider{Provider: "simkl"}

	if !errors.Is(err, &ErrUnknownProvider{}) {
		t.Error("expected errors.Is to match *ErrUnknownProvider")
	}
	if errors.Is(err, &ErrMalformedCandidate{}) {
		t.Error("expected errors.Is not to match *ErrMalformedCandidate")
	}
}

// ---------------------------------------------------------------------------
// ErrMalformedCandidate
// ---------------------------------------------------------------------------

func TestErrMalformedCandidate_Error(t *testing.T) {
	t.Parallel()
	err := &ErrMalformedCandidate{Provider: "kitsu", Reason: "missing title"}
	expected := "malformed candidate from provider kitsu: missing title"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestErrMalformedCandidate_Is(t *testing.T) {
	t.Parallel()
	err := &ErrMalformedCandidate{Provider: "kitsu", Reason: "missing title"}

	if !errors.Is(err, &ErrMalformedCandidate{}) {
		t.Error("expected errors.Is to match *ErrMalformedCandidate")
	}

	wrapped := fmt.Errorf("scoring: %w", err)
	if !errors.Is(wrapped, &ErrMalformedCandidate{}) {
		t.Error("expected errors.Is to match wrapped *ErrMalformedCandidate")
	}
}
