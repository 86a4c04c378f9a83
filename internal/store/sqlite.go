package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"hogar/internal/log"
)

// SQLiteStore keeps every document in a single documents table. It is the
// production Store implementation; the same database file can be shared
// by the server and the mirror worker.
type SQLiteStore struct {
	db       *sql.DB
	notifier Notifier

	mu   sync.Mutex
	subs map[string][]func(string)
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		subs: make(map[string][]func(string)),
	}, nil
}

// SetNotifier attaches the change bus. Writes before this call are not
// announced; attach it before serving traffic.
func (s *SQLiteStore) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *SQLiteStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read document %s: %w", key, err)
	}
	return json.RawMessage(doc), true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, key string, doc json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (key, doc, version, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   doc = excluded.doc,
		   version = documents.version + 1,
		   updated_at = CURRENT_TIMESTAMP`,
		key, string(doc))
	if err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	s.announce(ctx, key)
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("remove document %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.announce(ctx, key)
	}
	return nil
}

func (s *SQLiteStore) Subscribe(key string, fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[key] = append(s.subs[key], fn)
}

// DispatchExternal runs the subscribers for key. The change bus calls it
// after filtering out events this process published itself.
func (s *SQLiteStore) DispatchExternal(key string) {
	s.mu.Lock()
	fns := append([]func(string){}, s.subs[key]...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

func (s *SQLiteStore) announce(ctx context.Context, key string) {
	if s.notifier == nil {
		return
	}
	// Best effort: a lost notification degrades cross-process freshness,
	// not correctness. Subscribers re-read the store when they fire.
	if err := s.notifier.PublishChange(ctx, key); err != nil {
		slog.WarnContext(ctx, "Failed to publish change event", log.FieldKey, key, log.FieldError, err)
	}
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
