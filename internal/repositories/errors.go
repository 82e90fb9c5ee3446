package repositories

import (
	"errors"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrStoreError wraps unexpected document-store failures.
	ErrStoreError = errors.New("document store error")
)

// translate maps store-level errors onto repository sentinels so services
// never import the store package for error checks.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPathNotFound) {
		return ErrNotFound
	}
	return err
}
