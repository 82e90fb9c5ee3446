package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Badger is an embedded Store backend on BadgerDB. One badger key per
// document path; child queries iterate the path prefix in key order.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger-backed store at dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger at %s: %v", ErrStore, dir, err)
	}
	return &Badger{db: db}, nil
}

// OpenBadgerInMemory opens a badger store with no disk persistence. Used in
// tests exercising the badger backend.
func OpenBadgerInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open in-memory badger: %v", ErrStore, err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Write(_ context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, path, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), raw)
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStore, path, err)
	}
	return nil
}

func (b *Badger) Update(_ context.Context, path string, fields map[string]any) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		doc := make(map[string]any)
		item, err := txn.Get([]byte(path))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		for k, v := range fields {
			doc[k] = v
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return txn.Set([]byte(path), raw)
	})
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrStore, path, err)
	}
	return nil
}

func (b *Badger) Delete(_ context.Context, path string) error {
	// Collect keys first; deleting while iterating invalidates the iterator.
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(path)})
		defer it.Close()
		prefix := path + "/"
		for it.Rewind(); it.Valid(); it.Next() {
			k := string(it.Item().Key())
			if k == path || strings.HasPrefix(k, prefix) {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStore, path, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStore, path, err)
	}
	return nil
}

func (b *Badger) ReadOnce(_ context.Context, path string, dest any) error {
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrStore, path, err)
	}
	return nil
}

func (b *Badger) Query(_ context.Context, path string, q ChildQuery) ([]Child, error) {
	prefix := path + "/"
	children := []Child{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(prefix), PrefetchValues: true})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := strings.TrimPrefix(string(item.Key()), prefix)
			if strings.Contains(key, "/") {
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			children = append(children, Child{Key: key, Value: val})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrStore, path, err)
	}
	return applyQuery(children, q), nil
}

func (b *Badger) ChildKeys(_ context.Context, path string) ([]string, error) {
	prefix := path + "/"
	seen := map[string]struct{}{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(prefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			segment := strings.TrimPrefix(string(it.Item().Key()), prefix)
			if i := strings.Index(segment, "/"); i >= 0 {
				segment = segment[:i]
			}
			seen[segment] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: child keys %s: %v", ErrStore, path, err)
	}
	return sortedKeys(seen), nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
