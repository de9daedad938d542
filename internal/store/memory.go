package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is a thread-safe in-memory implementation of the storage port. It is
// used by tests and by the memory store driver in development.
type Memory[T Entity] struct {
	mu        sync.Mutex
	committed map[uuid.UUID]T
	order     []uuid.UUID
	staged    []op[T]
}

// NewMemory constructs an empty in-memory store.
func NewMemory[T Entity]() *Memory[T] {
	return &Memory[T]{committed: make(map[uuid.UUID]T)}
}

// ListAll returns committed entities in insertion order.
func (m *Memory[T]) ListAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.committed[id])
	}
	return out, nil
}

// GetByID returns the committed entity and whether it exists.
func (m *Memory[T]) GetByID(ctx context.Context, id uuid.UUID) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.committed[id]
	if !ok {
		return zero, false, nil
	}
	return entity, true, nil
}

// Add stages an insert.
func (m *Memory[T]) Add(ctx context.Context, entity T) error {
	return m.stage(ctx, op[T]{kind: opAdd, entity: entity})
}

// Update stages a mutation of an existing row.
func (m *Memory[T]) Update(ctx context.Context, entity T) error {
	return m.stage(ctx, op[T]{kind: opUpdate, entity: entity})
}

// Remove stages a deletion.
func (m *Memory[T]) Remove(ctx context.Context, entity T) error {
	return m.stage(ctx, op[T]{kind: opRemove, entity: entity})
}

func (m *Memory[T]) stage(ctx context.Context, o op[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = append(m.staged, o)
	return nil
}

// Commit applies all staged mutations and reports the number of affected rows.
// The stage is cleared even when a mutation fails; mutations before the failing
// one remain applied, matching the partial-progress behaviour of the port.
func (m *Memory[T]) Commit(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	staged := m.staged
	m.staged = nil

	var affected int64
	for _, o := range staged {
		id := o.entity.EntityID()
		switch o.kind {
		case opAdd:
			if _, exists := m.committed[id]; exists {
				return affected, ErrDuplicateID
			}
			m.committed[id] = o.entity
			m.order = append(m.order, id)
		case opUpdate:
			if _, exists := m.committed[id]; !exists {
				return affected, ErrMissingRow
			}
			m.committed[id] = o.entity
		case opRemove:
			if _, exists := m.committed[id]; !exists {
				return affected, ErrMissingRow
			}
			delete(m.committed, id)
			for i, ordered := range m.order {
				if ordered == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		}
		affected++
	}
	return affected, nil
}
