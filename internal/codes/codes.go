// Package codes provides a keyed one-time-code store with expiry, used for
// password-reset codes. It is injected as a dependency rather than living in
// a process-global map, so the backing can be redis in production and
// in-memory in tests or single-node deployments.
package codes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ErrCodeInvalid is returned when a code is unknown, expired, or mismatched.
var ErrCodeInvalid = errors.New("invalid or expired code")

// Store holds one-time codes keyed by subject (e.g. an email address).
// Issuing a new code for a subject replaces the previous one; Consume removes
// the code so it can be used at most once.
type Store interface {
	Put(ctx context.Context, subject, code string, ttl time.Duration) error
	Consume(ctx context.Context, subject, code string) error
}

// Generate returns a random numeric code of the given length.
func Generate(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
