package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals a malformed request parameter value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownParameter signals a parameter name the search domain does not define.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrBackendUnavailable signals a search backend failure.
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSemanticUnavailable signals a semantic request without a configured embedder.
	ErrSemanticUnavailable = errors.New("semantic search not configured")
)

// InvalidArgumentError wraps ErrInvalidArgument with the offending parameter and value.
type InvalidArgumentError struct {
	Parameter string
	Value     string
	Reason    string
}

func (e *InvalidArgumentError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidArgument.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrInvalidArgument.Error(), e.Parameter, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument creates an invalid argument error.
func NewInvalidArgument(parameter, value, reason string) error {
	return &InvalidArgumentError{Parameter: parameter, Value: value, Reason: reason}
}
