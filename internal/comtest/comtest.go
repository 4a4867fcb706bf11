// Package comtest provides in-process fakes for the native call layer:
// a Native that dispatches fake function addresses to Go functions, fake
// COM objects with scripted slots and observable reference counts, and a
// fake library of exported procedures.
package comtest

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/wippyai/dxshim/com"
)

// Native is a com.Native backed by Go functions registered under fake addresses.
type Native struct {
	mu    sync.Mutex
	next  uintptr
	funcs map[uintptr]reflect.Value
}

// NewNative creates an empty fake native layer.
func NewNative() *Native {
	return &Native{
		next:  0x10000,
		funcs: make(map[uintptr]reflect.Value),
	}
}

// NewCallback registers fn and returns its fake address.
func (n *Native) NewCallback(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("comtest: NewCallback with %T", fn))
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	addr := n.next
	n.next += 0x10
	n.funcs[addr] = v
	return addr
}

// Invoke calls the function registered at fn. Missing trailing arguments are zero.
func (n *Native) Invoke(fn uintptr, args ...uintptr) uintptr {
	n.mu.Lock()
	v, ok := n.funcs[fn]
	n.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("comtest: no function at %#x", fn))
	}

	t := v.Type()
	in := make([]reflect.Value, t.NumIn())
	for i := range in {
		var a uintptr
		if i < len(args) {
			a = args[i]
		}
		in[i] = reflect.ValueOf(a).Convert(t.In(i))
	}
	out := v.Call(in)
	if len(out) == 0 {
		return 0
	}
	return uintptr(out[0].Convert(reflect.TypeOf(uintptr(0))).Uint())
}

// Callbacks returns how many functions have been registered.
func (n *Native) Callbacks() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.funcs)
}

// CallSlot calls method slot of a native object the way a legacy caller
// does: it reads the vtable pointer stored at this and invokes the entry.
func (n *Native) CallSlot(this uintptr, slot int, args ...uintptr) uintptr {
	vtbl := com.ReadPtr(this)
	fn := com.ReadPtr(vtbl + uintptr(slot)*ptrSize)
	full := append([]uintptr{this}, args...)
	return n.Invoke(fn, full...)
}

const ptrSize = 4 << (^uintptr(0) >> 63)

// Call records one invocation of a fake object's method.
type Call struct {
	Slot int
	Args []uintptr
}

// Object is a fake real COM object.
// It starts with one reference, owned by whoever created it.
type Object struct {
	id       uintptr
	refs     atomic.Int32
	releases atomic.Int32

	mu       sync.Mutex
	calls    []Call
	handlers map[int]func(args []uintptr) uintptr
}

// Ptr returns the object's fake interface pointer.
func (o *Object) Ptr() uintptr {
	return o.id
}

// Call records the invocation and runs the slot's handler, if any.
// IUnknown AddRef and Release are answered by the fake itself when no
// handler is installed.
func (o *Object) Call(slot int, args ...uintptr) uintptr {
	h := o.record(slot, args)
	switch {
	case h != nil:
		return h(args)
	case slot == com.SlotAddRef:
		return uintptr(o.refs.Add(1))
	case slot == com.SlotRelease:
		return uintptr(o.release())
	}
	return 0
}

func (o *Object) record(slot int, args []uintptr) func([]uintptr) uintptr {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, Call{Slot: slot, Args: append([]uintptr(nil), args...)})
	return o.handlers[slot]
}

func (o *Object) release() uint32 {
	o.releases.Add(1)
	return uint32(o.refs.Add(-1))
}

// AddRef increments the fake count.
func (o *Object) AddRef() uint32 {
	return uint32(o.refs.Add(1))
}

// Release decrements the fake count and counts the call. Like a Release
// through the method table, it is recorded and a handler installed on
// com.SlotRelease sees it.
func (o *Object) Release() uint32 {
	h := o.record(com.SlotRelease, nil)
	n := o.release()
	if h != nil {
		h(nil)
	}
	return n
}

// On installs a handler for slot.
func (o *Object) On(slot int, fn func(args []uintptr) uintptr) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers[slot] = fn
	return o
}

// Refs returns the current fake reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// Releases returns how many times Release was called.
func (o *Object) Releases() int32 {
	return o.releases.Load()
}

// Calls returns every recorded invocation of slot.
func (o *Object) Calls(slot int) []Call {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Call
	for _, c := range o.calls {
		if c.Slot == slot {
			out = append(out, c)
		}
	}
	return out
}

// LastCall returns the most recent invocation of slot.
func (o *Object) LastCall(slot int) (Call, bool) {
	calls := o.Calls(slot)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

// World owns fake objects and resolves their fake pointers.
type World struct {
	mu      sync.Mutex
	next    uintptr
	objects map[uintptr]*Object
}

// NewWorld creates an empty set of fake objects.
func NewWorld() *World {
	return &World{
		next:    0x7000_0000,
		objects: make(map[uintptr]*Object),
	}
}

// New creates a fake object with one reference.
func (w *World) New() *Object {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next += 0x100
	o := &Object{
		id:       w.next,
		handlers: make(map[int]func([]uintptr) uintptr),
	}
	o.refs.Store(1)
	w.objects[o.id] = o
	return o
}

// Get returns the fake object behind ptr.
func (w *World) Get(ptr uintptr) (*Object, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o, ok := w.objects[ptr]
	return o, ok
}

// Bind is a com.Binder over the world's objects.
func (w *World) Bind(ptr uintptr) com.Object {
	o, ok := w.Get(ptr)
	if !ok {
		return nil
	}
	return o
}

// Library is a fake loaded library.
type Library struct {
	Procs  map[string]uintptr
	Closed bool
}

// Proc returns the registered address for name.
func (l *Library) Proc(name string) (uintptr, error) {
	if p, ok := l.Procs[name]; ok && p != 0 {
		return p, nil
	}
	return 0, fmt.Errorf("comtest: symbol %s not found", name)
}

// Close marks the library closed.
func (l *Library) Close() error {
	l.Closed = true
	return nil
}

// WriteOut stores v through the out pointer in args[i].
func WriteOut(args []uintptr, i int, v uintptr) {
	com.WritePtr(args[i], v)
}
