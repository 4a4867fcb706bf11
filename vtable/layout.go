package vtable

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wippyai/dxshim/com"
)

// Layout is the ordered method table of one legacy interface.
// The position of each slot is the binary contract with callers.
type Layout struct {
	Name   string
	Slots  []Slot
	Status func(com.HRESULT) com.HRESULT
}

// NewLayout builds a layout from slots in method-table order.
// It panics if a slot is unnamed or a name repeats, since either is a
// programming error in a static table.
func NewLayout(name string, slots ...Slot) *Layout {
	seen := make(map[string]bool, len(slots))
	for i := range slots {
		s := &slots[i]
		if s.Name == "" {
			panic(fmt.Sprintf("vtable: %s slot %d has no name", name, i))
		}
		if seen[s.Name] {
			panic(fmt.Sprintf("vtable: %s slot %s repeated", name, s.Name))
		}
		seen[s.Name] = true
		if s.real == sameSlot {
			s.real = i
		}
	}
	return &Layout{Name: name, Slots: slots}
}

// WithStatus sets the status translation applied to forwarded results.
func (l *Layout) WithStatus(fn func(com.HRESULT) com.HRESULT) *Layout {
	l.Status = fn
	return l
}

// Len returns the number of slots.
func (l *Layout) Len() int {
	return len(l.Slots)
}

// Index returns the slot position of name, or -1.
func (l *Layout) Index(name string) int {
	for i, s := range l.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}

var (
	layoutsMu sync.Mutex
	layouts   []*Layout
)

// Register records l for inspection tools and returns it.
func Register(l *Layout) *Layout {
	layoutsMu.Lock()
	defer layoutsMu.Unlock()
	layouts = append(layouts, l)
	return l
}

// Layouts returns every registered layout sorted by name.
func Layouts() []*Layout {
	layoutsMu.Lock()
	out := append([]*Layout(nil), layouts...)
	layoutsMu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
