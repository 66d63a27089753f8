package store

import "slices"

// table holds records of one entity keyed by id, iteration follows insertion order.
// Snapshot slice is built on first read after a write and reused until next write.
type table[T any] struct {
	rows     map[string]T
	order    []string
	snapshot []T
	stale    bool
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T), stale: true}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) insert(id string, row T) {
	t.rows[id] = row
	t.order = append(t.order, id)
	t.stale = true
}

func (t *table[T]) replace(id string, row T) {
	t.rows[id] = row
	t.stale = true
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	t.stale = true
	return true
}

func (t *table[T]) len() int {
	return len(t.order)
}

// each visits rows in insertion order until fn returns false
func (t *table[T]) each(fn func(T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

// update rewrites every row in place, fn reports whether row was changed
func (t *table[T]) update(fn func(T) (T, bool)) int {
	changed := 0
	for _, id := range t.order {
		if row, ok := fn(t.rows[id]); ok {
			t.rows[id] = row
			changed++
		}
	}
	if changed > 0 {
		t.stale = true
	}
	return changed
}

func (t *table[T]) all() []T {
	if !t.stale {
		return t.snapshot
	}

	snapshot := make([]T, 0, len(t.order))
	for _, id := range t.order {
		snapshot = append(snapshot, t.rows[id])
	}
	t.snapshot = snapshot
	t.stale = false
	return t.snapshot
}

func (t *table[T]) reset() {
	t.rows = make(map[string]T)
	t.order = nil
	t.snapshot = nil
	t.stale = true
}
