package sheet

import (
	"context"
	"fmt"
)

// Record is one read-back row keyed by header name. For every cell the
// stored formula text wins over the computed value.
type Record map[string]any

// TabularStore is an append-only row store with full read-back. Appends
// never read existing rows and never deduplicate: two identical saves
// produce two rows.
type TabularStore interface {
	Append(ctx context.Context, row Row) error
	ReadAll(ctx context.Context) ([]Record, error)
}

// StoreAccessError reports that the tabular store or its named data
// region could not be reached. Region is empty when the store handle
// itself was the problem, so the two causes stay distinguishable.
type StoreAccessError struct {
	Store  string
	Region string
	Err    error
}

func (e *StoreAccessError) Error() string {
	if e.Region != "" {
		if e.Err != nil {
			return fmt.Sprintf("data region %q not found in store %q: %v", e.Region, e.Store, e.Err)
		}
		return fmt.Sprintf("data region %q not found in store %q", e.Region, e.Store)
	}
	return fmt.Sprintf("cannot open tabular store %q: %v", e.Store, e.Err)
}

func (e *StoreAccessError) Unwrap() error { return e.Err }
