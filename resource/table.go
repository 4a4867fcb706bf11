package resource

import (
	"sync"
)

type slot struct {
	value  any
	typeID uint32
	gen    uint32
	live   bool
}

// Table maps handles to Go values. It is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	slots  []slot
	free   []uint32
	live   int
	closed bool

	obsMu     sync.RWMutex
	observers []Observer
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{slots: make([]slot, 0, 32)}
}

// Insert stores value under a new handle. It returns 0 once the table is
// closed or full.
func (t *Table) Insert(typeID uint32, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if len(t.slots) >= MaxLive {
			t.mu.Unlock()
			return 0
		}
		t.slots = append(t.slots, slot{gen: 1})
		idx = uint32(len(t.slots))
	}
	s := &t.slots[idx-1]
	s.value, s.typeID, s.live = value, typeID, true
	h := makeHandle(idx, s.gen)
	t.live++
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h
}

// lookup must be called with mu held.
func (t *Table) lookup(h Handle) *slot {
	idx := h.index()
	if idx == 0 || int(idx) > len(t.slots) {
		return nil
	}
	s := &t.slots[idx-1]
	if !s.live || s.gen&genMask != h.gen() {
		return nil
	}
	return s
}

// Get returns the value behind h.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s := t.lookup(h); s != nil {
		return s.value, true
	}
	return nil, false
}

// GetTyped returns the value behind h only if it was stored as typeID.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s := t.lookup(h); s != nil && s.typeID == typeID {
		return s.value, true
	}
	return nil, false
}

// Remove frees h, drops its value and returns it.
func (t *Table) Remove(h Handle) (any, bool) {
	return t.remove(h, func(*slot) bool { return true })
}

// RemoveTyped is Remove restricted to values stored as typeID.
func (t *Table) RemoveTyped(h Handle, typeID uint32) (any, bool) {
	return t.remove(h, func(s *slot) bool { return s.typeID == typeID })
}

func (t *Table) remove(h Handle, match func(*slot) bool) (any, bool) {
	t.mu.Lock()
	s := t.lookup(h)
	if s == nil || !match(s) {
		t.mu.Unlock()
		return nil, false
	}
	value, typeID := s.value, s.typeID
	s.value, s.live = nil, false
	s.gen++
	t.free = append(t.free, h.index())
	t.live--
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: h, TypeID: typeID, Value: value})
	return value, true
}

// Subscribe adds an observer of lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	t.observers = append(t.observers, o)
	t.obsMu.Unlock()
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each visits live handles in slot order until fn returns false. It
// works on a snapshot, so fn may insert or remove.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.RLock()
	snap := make([]slot, len(t.slots))
	copy(snap, t.slots)
	t.mu.RUnlock()

	for i, s := range snap {
		if s.live && !fn(makeHandle(uint32(i+1), s.gen), s.typeID, s.value) {
			return
		}
	}
}

// Clear removes every live handle, dropping the values.
func (t *Table) Clear() {
	var hs []Handle
	t.Each(func(h Handle, _ uint32, _ any) bool {
		hs = append(hs, h)
		return true
	})
	for _, h := range hs {
		t.Remove(h)
	}
}

// Close stops the table from issuing handles. Live values stay reachable
// and are not dropped: the owner decides whether releasing them is still
// safe.
func (t *Table) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	obs := t.observers
	t.obsMu.RUnlock()
	for _, o := range obs {
		o.OnResourceEvent(e)
	}
}
