package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	parent TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  JSONB NOT NULL,
	PRIMARY KEY (parent, key)
);
CREATE INDEX IF NOT EXISTS documents_parent_idx ON documents (parent);
`

// Postgres is a Store backend persisting the document tree into a single
// jsonb table keyed by (parent path, child key). Child ordering and filtering
// run through the same in-process query evaluation as the other backends so
// semantics stay identical.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to PostgreSQL and ensures the documents schema exists.
func OpenPostgres(host, port, user, password, dbname, sslmode string) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %v", ErrStore, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: connect postgres: %v", ErrStore, err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("%w: apply schema: %v", ErrStore, err)
	}
	return &Postgres{db: db}, nil
}

// splitPath separates a document path into its parent path and final key.
func splitPath(path string) (parent, key string) {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

func (p *Postgres) Write(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, path, err)
	}
	parent, key := splitPath(path)
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (parent, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (parent, key) DO UPDATE SET value = EXCLUDED.value`,
		parent, key, raw)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStore, path, err)
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, path string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, path, err)
	}
	parent, key := splitPath(path)
	// jsonb || is a shallow merge, which matches the update contract.
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (parent, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (parent, key) DO UPDATE SET value = documents.value || EXCLUDED.value`,
		parent, key, raw)
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrStore, path, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, path string) error {
	parent, key := splitPath(path)
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE (parent = $1 AND key = $2) OR parent = $3 OR parent LIKE $4`,
		parent, key, path, path+"/%")
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStore, path, err)
	}
	return nil
}

func (p *Postgres) ReadOnce(ctx context.Context, path string, dest any) error {
	parent, key := splitPath(path)
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM documents WHERE parent = $1 AND key = $2`,
		parent, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrStore, path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrStore, path, err)
	}
	return nil
}

func (p *Postgres) Query(ctx context.Context, path string, q ChildQuery) ([]Child, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT key, value FROM documents WHERE parent = $1 ORDER BY key`, path)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrStore, path, err)
	}
	defer rows.Close()

	children := []Child{}
	for rows.Next() {
		var c Child
		var raw []byte
		if err := rows.Scan(&c.Key, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrStore, path, err)
		}
		c.Value = raw
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrStore, path, err)
	}
	return applyQuery(children, q), nil
}

func (p *Postgres) ChildKeys(ctx context.Context, path string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT key FROM documents WHERE parent = $1
		UNION
		SELECT split_part(substr(parent, length($1) + 2), '/', 1)
		FROM documents WHERE parent LIKE $2
		ORDER BY 1`,
		path, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("%w: child keys %s: %v", ErrStore, path, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("%w: child keys %s: %v", ErrStore, path, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: child keys %s: %v", ErrStore, path, err)
	}
	return keys, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
