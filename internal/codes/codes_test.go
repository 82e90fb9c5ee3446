package codes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesNumericCodes(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := Generate(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not all collide")
}

func TestMemoryConsumeMatchesOnce(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "a@b.kz", "123456", time.Minute))
	require.NoError(t, m.Consume(ctx, "a@b.kz", "123456"))
	assert.ErrorIs(t, m.Consume(ctx, "a@b.kz", "123456"), ErrCodeInvalid)
}

func TestMemoryConsumeRejectsMismatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "a@b.kz", "123456", time.Minute))
	assert.ErrorIs(t, m.Consume(ctx, "a@b.kz", "654321"), ErrCodeInvalid)
	// a failed attempt burns the code
	assert.ErrorIs(t, m.Consume(ctx, "a@b.kz", "123456"), ErrCodeInvalid)
}

func TestMemoryConsumeRejectsExpired(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	m := NewMemoryAt(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "a@b.kz", "123456", 10*time.Minute))
	now = now.Add(11 * time.Minute)
	assert.ErrorIs(t, m.Consume(ctx, "a@b.kz", "123456"), ErrCodeInvalid)
}

func TestMemoryPutReplacesPreviousCode(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "a@b.kz", "111111", time.Minute))
	require.NoError(t, m.Put(ctx, "a@b.kz", "222222", time.Minute))

	assert.ErrorIs(t, m.Consume(ctx, "a@b.kz", "111111"), ErrCodeInvalid)
	// replaced code was burned by the failed attempt above; issue again
	require.NoError(t, m.Put(ctx, "a@b.kz", "333333", time.Minute))
	assert.NoError(t, m.Consume(ctx, "a@b.kz", "333333"))
}

func TestConsumeUnknownSubject(t *testing.T) {
	m := NewMemory()
	assert.ErrorIs(t, m.Consume(context.Background(), "nobody@b.kz", "123456"), ErrCodeInvalid)
}
