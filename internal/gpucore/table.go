package gpucore

// Table maps opaque IDs to backend objects. IDs start at 1 and are never
// reused. The zero Table is ready to use.
type Table[K ~uint64, V any] struct {
	next  K
	items map[K]V
}

// Insert stores v and returns its new ID.
func (t *Table[K, V]) Insert(v V) K {
	if t.items == nil {
		t.items = make(map[K]V)
	}
	t.next++
	t.items[t.next] = v
	return t.next
}

// Get returns the object stored under id.
func (t *Table[K, V]) Get(id K) (V, bool) {
	v, ok := t.items[id]
	return v, ok
}

// Remove deletes id and returns the object it named.
func (t *Table[K, V]) Remove(id K) (V, bool) {
	v, ok := t.items[id]
	if ok {
		delete(t.items, id)
	}
	return v, ok
}

// Len returns the number of live entries.
func (t *Table[K, V]) Len() int {
	return len(t.items)
}

// Each calls fn for every live entry in unspecified order.
func (t *Table[K, V]) Each(fn func(K, V)) {
	for k, v := range t.items {
		fn(k, v)
	}
}
