// Package store defines the path-addressed document tree the application
// persists into, plus the backends that implement it (postgres, badger,
// in-memory). Documents live at slash-separated paths such as
// memberships/{clientId}/{version}; queries operate on the immediate children
// of a path.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrPathNotFound is returned by ReadOnce when no document exists at the path.
	ErrPathNotFound = errors.New("no document at path")

	// ErrStore wraps unexpected backend failures.
	ErrStore = errors.New("store error")
)

// Child is one immediate child of a queried path.
type Child struct {
	Key   string
	Value json.RawMessage
}

// ChildQuery selects and orders the immediate children of a path.
//
// The zero value returns all children ordered by key. OrderBy switches
// ordering to the named field of each child document (nulls first, then
// booleans, numbers, strings; ties broken by key). Equals restricts results to
// children whose OrderBy field equals the given value, where a nil Equals with
// HasEquals set matches an explicit JSON null or a missing field. LimitToLast
// keeps only the last n children in the chosen order; results always come back
// in ascending order.
type ChildQuery struct {
	OrderBy     string
	Equals      any
	HasEquals   bool
	LimitToLast int
}

// EqualTo returns a query filtering children whose field equals value.
func EqualTo(field string, value any) ChildQuery {
	return ChildQuery{OrderBy: field, Equals: value, HasEquals: true}
}

// Store is the minimal document-store contract the application depends on.
type Store interface {
	// Write stores value, JSON-encoded, as the document at path, replacing
	// whatever was there.
	Write(ctx context.Context, path string, value any) error

	// Update merges fields into the document at path, creating it if absent.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Delete removes the document at path and the whole subtree below it.
	Delete(ctx context.Context, path string) error

	// ReadOnce decodes the document at path into dest. Returns
	// ErrPathNotFound when nothing is stored there.
	ReadOnce(ctx context.Context, path string, dest any) error

	// Query returns the immediate children of path per q. A path with no
	// children yields an empty slice, not an error.
	Query(ctx context.Context, path string, q ChildQuery) ([]Child, error)

	// ChildKeys lists the immediate child segments under path, in ascending
	// order, including structural segments that only have deeper descendants
	// (e.g. client ids under "memberships").
	ChildKeys(ctx context.Context, path string) ([]string, error)

	// Close releases backend resources.
	Close() error
}
