package db

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_WrapsSentinel(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &Error{Op: OpSearch, Err: fmt.Errorf("%w: gbif_dataset", ErrIndexNotFound)})

	if !errors.Is(err, ErrIndexNotFound) {
		t.Error("expected ErrIndexNotFound in chain")
	}
	var dbErr *Error
	if !errors.As(err, &dbErr) || dbErr.Op != OpSearch {
		t.Fatalf("expected db.Error with op SEARCH, got %v", err)
	}
	if got := dbErr.Error(); got != "SEARCH: db: index not found: gbif_dataset" {
		t.Errorf("Error() = %q", got)
	}
}
