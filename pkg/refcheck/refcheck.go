// Package refcheck provides the external reference predicates the banking
// schemas attach to foreign-key style fields, such as the owner of a new
// account. Implementations answer one question: does the referenced record
// exist. Failures are reported to the evaluator as ordinary reference
// violations, so a slow or unavailable backend degrades to a rejected field,
// never a crashed request.
package refcheck

import (
	"context"
	"errors"
	"sync"

	"github.com/bankcore/rulekit/pkg/schema"
)

// ErrNotFound is returned when the referenced record does not exist.
var ErrNotFound = errors.New("referenced record not found")

// Checker reports whether a record with the given ID exists.
type Checker interface {
	Exists(ctx context.Context, id int64) error
}

// AsExternalCheck adapts a Checker into the schema package's external check
// shape. Non-integer values are rejected outright; the banking schemas coerce
// the field before the check runs, so that only happens on misuse.
func AsExternalCheck(c Checker) schema.ExternalCheck {
	return func(ctx context.Context, value any) error {
		id, ok := value.(int64)
		if !ok {
			return schema.ErrInvalidReference
		}
		return c.Exists(ctx, id)
	}
}

// Memory is an in-memory Checker backed by a set of known IDs. Useful in
// tests and single-process setups.
type Memory struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func NewMemory(ids ...int64) *Memory {
	m := &Memory{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// Add registers an ID as existing.
func (m *Memory) Add(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = struct{}{}
}

// Remove forgets an ID.
func (m *Memory) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, id)
}

func (m *Memory) Exists(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.ids[id]; !ok {
		return ErrNotFound
	}
	return nil
}
