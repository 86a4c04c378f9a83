// Package store provides the key to JSON-document persistence layer the
// engine runs on. Each logical collection lives under one key as a single
// document; the store knows nothing about the shapes inside.
package store

import (
	"context"
	"encoding/json"
)

// Persisted document keys. Exact names are a compatibility surface for
// data migrated from earlier deployments.
const (
	KeyUsers         = "users"
	KeyTasks         = "tareas"
	KeyExpenses      = "gastosMensuales"
	KeyShopping      = "compras"
	KeyCustomRewards = "recompensasPersonalizadas"
	KeyHistory       = "historialRecompensas"
	KeyPoints        = "puntosPorUsuario"
)

// Store is the document store contract the repositories consume.
//
// There are no multi-key transactions: a crash can leave some keys
// written and others not, and callers must keep their cascades safe to
// re-run.
type Store interface {
	// Read returns the document at key. The bool reports presence;
	// an absent key is not an error.
	Read(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Write replaces the document at key.
	Write(ctx context.Context, key string, doc json.RawMessage) error

	// Remove deletes the document at key. Removing an absent key is a
	// no-op.
	Remove(ctx context.Context, key string) error

	// Subscribe registers fn to run when key changes in another
	// process. Changes made through this store instance never fire it.
	Subscribe(key string, fn func(key string))

	Close() error
}

// Notifier publishes change events so other processes sharing the store
// learn about writes. Implementations tag events with an origin ID so a
// process can ignore its own.
type Notifier interface {
	PublishChange(ctx context.Context, key string) error
}
