package memstore

import "slices"

// table is an id-ordered map with a monotonic id counter.
type table[T any] struct {
	rows  map[int]T
	order []int
	last  int
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

func (t *table[T]) clone() *table[T] {
	rows := make(map[int]T, len(t.rows))
	for id, v := range t.rows {
		rows[id] = v
	}
	return &table[T]{rows: rows, order: slices.Clone(t.order), last: t.last}
}

func (t *table[T]) get(id int) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// list returns rows in ascending id order.
func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// nextID reserves the next id. Ids are never reused, even after removal.
func (t *table[T]) nextID() int {
	t.last++
	return t.last
}

func (t *table[T]) insert(id int, v T) {
	t.rows[id] = v
	t.order = append(t.order, id)
}

func (t *table[T]) replace(id int, v T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}
