package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends under test; both must satisfy the same contract.
func testStores(t *testing.T) map[string]Store {
	t.Helper()

	badgerStore, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { badgerStore.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"badger": badgerStore,
	}
}

func TestWriteAndReadOnce(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			err := s.Write(ctx, "clients/c1", map[string]any{"name": "Aruzhan", "age": "23"})
			require.NoError(t, err)

			var doc map[string]string
			require.NoError(t, s.ReadOnce(ctx, "clients/c1", &doc))
			assert.Equal(t, "Aruzhan", doc["name"])
		})
	}
}

func TestReadOnceMissingPath(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			var doc map[string]any
			err := s.ReadOnce(context.Background(), "clients/nope", &doc)
			assert.ErrorIs(t, err, ErrPathNotFound)
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "staff/s1", map[string]any{"name": "Dias", "post": "Trainer"}))
			require.NoError(t, s.Update(ctx, "staff/s1", map[string]any{"post": "Manager"}))

			var doc map[string]any
			require.NoError(t, s.ReadOnce(ctx, "staff/s1", &doc))
			assert.Equal(t, "Dias", doc["name"], "untouched field survives the merge")
			assert.Equal(t, "Manager", doc["post"])
		})
	}
}

func TestUpdateCreatesMissingDocument(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Update(ctx, "attendance/clients/c1", map[string]any{"2025-07-10": true}))

			var doc map[string]bool
			require.NoError(t, s.ReadOnce(ctx, "attendance/clients/c1", &doc))
			assert.True(t, doc["2025-07-10"])
		})
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "memberships/c1/v1", map[string]any{"status": "active"}))
			require.NoError(t, s.Write(ctx, "memberships/c1/v2", map[string]any{"status": "expired"}))
			require.NoError(t, s.Write(ctx, "memberships/c2/v1", map[string]any{"status": "active"}))

			require.NoError(t, s.Delete(ctx, "memberships/c1"))

			var doc map[string]any
			assert.ErrorIs(t, s.ReadOnce(ctx, "memberships/c1/v1", &doc), ErrPathNotFound)
			assert.ErrorIs(t, s.ReadOnce(ctx, "memberships/c1/v2", &doc), ErrPathNotFound)
			assert.NoError(t, s.ReadOnce(ctx, "memberships/c2/v1", &doc), "sibling subtree untouched")
		})
	}
}

func TestQueryReturnsImmediateChildrenInKeyOrder(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "memberships/c1/2025-07-10T10:00:00_000", map[string]any{"paymentAmount": 100.0}))
			require.NoError(t, s.Write(ctx, "memberships/c1/2025-01-01T09:00:00_000", map[string]any{"paymentAmount": 50.0}))

			children, err := s.Query(ctx, "memberships/c1", ChildQuery{})
			require.NoError(t, err)
			require.Len(t, children, 2)
			assert.Equal(t, "2025-01-01T09:00:00_000", children[0].Key)
			assert.Equal(t, "2025-07-10T10:00:00_000", children[1].Key)
		})
	}
}

func TestQuerySkipsDeeperDescendants(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "memberships/c1/v1", map[string]any{"status": "active"}))

			children, err := s.Query(ctx, "memberships", ChildQuery{})
			require.NoError(t, err)
			assert.Empty(t, children, "c1 is structural, not a document")

			keys, err := s.ChildKeys(ctx, "memberships")
			require.NoError(t, err)
			assert.Equal(t, []string{"c1"}, keys, "ChildKeys sees structural segments")
		})
	}
}

func TestQueryEqualToNullMatchesMissingAndNullFields(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "memberships/c1/v1", map[string]any{"endDate": "2025-06-30", "status": "expired"}))
			require.NoError(t, s.Write(ctx, "memberships/c1/v2", map[string]any{"endDate": nil, "status": "active"}))
			require.NoError(t, s.Write(ctx, "memberships/c1/v3", map[string]any{"status": "active"}))

			children, err := s.Query(ctx, "memberships/c1", EqualTo("endDate", nil))
			require.NoError(t, err)
			require.Len(t, children, 2)
			assert.Equal(t, "v2", children[0].Key)
			assert.Equal(t, "v3", children[1].Key)
		})
	}
}

func TestQueryEqualToString(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "gyms/g1", map[string]any{"email": "a@gym.kz"}))
			require.NoError(t, s.Write(ctx, "gyms/g2", map[string]any{"email": "b@gym.kz"}))

			children, err := s.Query(ctx, "gyms", EqualTo("email", "b@gym.kz"))
			require.NoError(t, err)
			require.Len(t, children, 1)
			assert.Equal(t, "g2", children[0].Key)
		})
	}
}

func TestQueryLimitToLastKeepsTailAscending(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "memberships/c1/v1", map[string]any{"paymentAmount": 10.0}))
			require.NoError(t, s.Write(ctx, "memberships/c1/v2", map[string]any{"paymentAmount": 20.0}))
			require.NoError(t, s.Write(ctx, "memberships/c1/v3", map[string]any{"paymentAmount": 30.0}))

			children, err := s.Query(ctx, "memberships/c1", ChildQuery{LimitToLast: 1})
			require.NoError(t, err)
			require.Len(t, children, 1)
			assert.Equal(t, "v3", children[0].Key)
		})
	}
}

func TestQueryOrderByFieldRanksTypes(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Write(ctx, "things/a", map[string]any{"v": "zzz"}))
			require.NoError(t, s.Write(ctx, "things/b", map[string]any{"v": 5}))
			require.NoError(t, s.Write(ctx, "things/c", map[string]any{"v": nil}))
			require.NoError(t, s.Write(ctx, "things/d", map[string]any{"v": true}))

			children, err := s.Query(ctx, "things", ChildQuery{OrderBy: "v"})
			require.NoError(t, err)
			require.Len(t, children, 4)
			// nulls, then booleans, then numbers, then strings
			assert.Equal(t, "c", children[0].Key)
			assert.Equal(t, "d", children[1].Key)
			assert.Equal(t, "b", children[2].Key)
			assert.Equal(t, "a", children[3].Key)
		})
	}
}
