package resource

// Typed is a view of a shared Table restricted to one type ID. Several
// views over one table hand out handles that never collide.
type Typed[T any] struct {
	table  *Table
	typeID uint32
}

// NewTyped returns the typeID view of table.
func NewTyped[T any](table *Table, typeID uint32) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// Insert stores value and returns its handle, or 0.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.typeID, value)
}

// Get returns the value behind h. Handles of other types are not visible.
func (t *Typed[T]) Get(h Handle) (T, bool) {
	v, ok := t.table.GetTyped(h, t.typeID)
	if !ok {
		var zero T
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// Remove frees h if it belongs to this view and returns its value.
func (t *Typed[T]) Remove(h Handle) (T, bool) {
	v, ok := t.table.RemoveTyped(h, t.typeID)
	if !ok {
		var zero T
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// Len returns the number of live handles of this type.
func (t *Typed[T]) Len() int {
	n := 0
	t.table.Each(func(_ Handle, typeID uint32, _ any) bool {
		if typeID == t.typeID {
			n++
		}
		return true
	})
	return n
}

// Each visits the live values of this type until fn returns false.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	t.table.Each(func(h Handle, typeID uint32, v any) bool {
		if typeID != t.typeID {
			return true
		}
		tv, ok := v.(T)
		if !ok {
			return true
		}
		return fn(h, tv)
	})
}
