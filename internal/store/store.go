// Package store provides the per-entity storage port consumed by the catalog,
// basket, and stock services, plus its in-memory and Postgres implementations.
//
// Writes are staged: Add, Update, and Remove only record the mutation. Commit
// makes everything staged so far durable and reports the number of affected
// rows. Reads observe committed state only.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Entity is anything with an opaque unique identity.
type Entity interface {
	EntityID() uuid.UUID
}

// Store is the storage port for one entity kind.
type Store[T Entity] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, bool, error)
	Add(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Remove(ctx context.Context, entity T) error
	Commit(ctx context.Context) (int64, error)
}

var (
	// ErrMissingRow is returned by Commit when a staged update or removal
	// references a row that no longer exists.
	ErrMissingRow = errors.New("store: staged mutation references a missing row")
	// ErrDuplicateID is returned by Commit when a staged add collides with an
	// existing identity.
	ErrDuplicateID = errors.New("store: duplicate entity id")
)

type opKind int

const (
	opAdd opKind = iota
	opUpdate
	opRemove
)

type op[T Entity] struct {
	kind   opKind
	entity T
}
