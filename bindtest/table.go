package bindtest

import (
	"sync"
)

// Table is an in-memory record store for Routable test models. Each field
// is read from a record by an accessor; "" addresses the primary field.
type Table[T any] struct {
	mu      sync.RWMutex
	primary string
	fields  map[string]func(T) string
	rows    []row[T]
}

type row[T any] struct {
	value   T
	deleted bool
}

func NewTable[T any](primary string, key func(T) string) *Table[T] {
	return &Table[T]{
		primary: primary,
		fields:  map[string]func(T) string{primary: key},
	}
}

// Field registers an additional lookup field.
func (t *Table[T]) Field(name string, accessor func(T) string) *Table[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fields[name] = accessor
	return t
}

func (t *Table[T]) Insert(values ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, v := range values {
		t.rows = append(t.rows, row[T]{value: v})
	}
}

// SoftDelete marks the record with the given primary key as deleted.
func (t *Table[T]) SoftDelete(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	accessor := t.fields[t.primary]
	for i := range t.rows {
		if accessor(t.rows[i].value) == key {
			t.rows[i].deleted = true
			return true
		}
	}
	return false
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// Find returns the first record whose field equals value.
func (t *Table[T]) Find(field, value string, withTrashed bool) (T, bool) {
	return t.FindWhere(field, value, withTrashed, nil)
}

// FindWhere is Find restricted to records accepted by scope. A nil scope
// accepts every record.
func (t *Table[T]) FindWhere(field, value string, withTrashed bool, scope func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	if field == "" {
		field = t.primary
	}
	accessor, ok := t.fields[field]
	if !ok {
		return zero, false
	}

	for _, r := range t.rows {
		if r.deleted && !withTrashed {
			continue
		}
		if scope != nil && !scope(r.value) {
			continue
		}
		if accessor(r.value) == value {
			return r.value, true
		}
	}
	return zero, false
}
