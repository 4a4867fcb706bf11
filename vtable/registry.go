package vtable

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/resource"
)

// Forwarder is implemented by proxies that hold a real object.
type Forwarder interface {
	Real() com.Object
}

// object is the native view of a proxy: a method table pointer followed
// by the proxy's handle. Callers only ever read the first word.
type object struct {
	vtbl   uintptr
	handle uintptr
}

type nativeTable struct {
	fns  []uintptr
	addr uintptr
}

// Registry owns native method tables and the native objects handed to
// legacy callers, and maps their addresses back to Go proxies.
type Registry struct {
	native  com.Native
	handles *resource.Table

	mu      sync.RWMutex
	tables  map[*Layout]*nativeTable
	objects map[uintptr]*object

	trace atomic.Bool
}

// NewRegistry creates a registry whose callbacks are built with native.
func NewRegistry(native com.Native) *Registry {
	return &Registry{
		native:  native,
		handles: resource.NewTable(),
		tables:  make(map[*Layout]*nativeTable),
		objects: make(map[uintptr]*object),
	}
}

// Native returns the native layer used for callbacks.
func (r *Registry) Native() com.Native {
	return r.native
}

// SetTrace enables Debug logging of every dispatched slot.
func (r *Registry) SetTrace(on bool) {
	r.trace.Store(on)
}

// Bind allocates a native object presenting layout l for v and returns its
// address. It returns 0 once the registry is closed.
func (r *Registry) Bind(l *Layout, typeID uint32, v any) uintptr {
	t := r.table(l)

	h := r.handles.Insert(typeID, v)
	if h == 0 {
		return 0
	}

	obj := &object{vtbl: t.addr, handle: uintptr(h)}
	ptr := com.Addr(obj)

	r.mu.Lock()
	r.objects[ptr] = obj
	r.mu.Unlock()
	return ptr
}

// Unbind forgets the native object at ptr.
func (r *Registry) Unbind(ptr uintptr) {
	r.mu.Lock()
	obj, ok := r.objects[ptr]
	delete(r.objects, ptr)
	r.mu.Unlock()

	if ok {
		r.handles.Remove(resource.Handle(obj.handle))
	}
}

// Lookup returns the proxy behind a native object address.
// Addresses not issued by this registry resolve to nothing.
func (r *Registry) Lookup(ptr uintptr) (any, bool) {
	if ptr == 0 {
		return nil, false
	}
	r.mu.RLock()
	obj, ok := r.objects[ptr]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.handles.Get(resource.Handle(obj.handle))
}

// Unwrap returns the real interface pointer behind a proxy address.
// Addresses that are not proxies are returned unchanged.
func (r *Registry) Unwrap(ptr uintptr) uintptr {
	v, ok := r.Lookup(ptr)
	if !ok {
		return ptr
	}
	f, ok := v.(Forwarder)
	if !ok || f.Real() == nil {
		return ptr
	}
	return f.Real().Ptr()
}

// Live returns the number of bound proxies.
func (r *Registry) Live() int {
	return r.handles.Len()
}

// Each visits every bound proxy.
func (r *Registry) Each(fn func(typeID uint32, v any) bool) {
	r.handles.Each(func(_ resource.Handle, typeID uint32, v any) bool {
		return fn(typeID, v)
	})
}

// Subscribe adds an observer of proxy creation and destruction.
func (r *Registry) Subscribe(o resource.Observer) {
	r.handles.Subscribe(o)
}

// Close stops the registry from binding new proxies. Live proxies keep
// their native tables but their real objects are not released, since the
// real library may already be unloading.
func (r *Registry) Close() error {
	return r.handles.Close()
}

func (r *Registry) table(l *Layout) *nativeTable {
	r.mu.RLock()
	t, ok := r.tables[l]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[l]; ok {
		return t
	}

	fns := make([]uintptr, len(l.Slots))
	for i := range l.Slots {
		s := &l.Slots[i]
		fns[i] = r.native.NewCallback(thunk(s.Arity, func(this uintptr, args []uintptr) uintptr {
			return r.dispatch(l, s, this, args)
		}))
	}
	t = &nativeTable{fns: fns, addr: com.Addr(&fns[0])}
	r.tables[l] = t
	return t
}

func (r *Registry) dispatch(l *Layout, s *Slot, this uintptr, args []uintptr) uintptr {
	var ret uintptr
	if s.kind == kindMethod {
		ret = s.call(r, this, args)
	} else {
		ret = r.forward(l, s, this, args)
	}

	if r.trace.Load() {
		if ce := Logger().Check(zap.DebugLevel, "call"); ce != nil {
			ce.Write(
				zap.String("interface", l.Name),
				zap.String("method", s.Name),
				zap.Uintptr("this", this),
				zap.Uintptrs("args", args),
				zap.Uintptr("result", ret),
			)
		}
	}
	return ret
}

func (r *Registry) forward(l *Layout, s *Slot, this uintptr, args []uintptr) uintptr {
	v, ok := r.Lookup(this)
	if !ok {
		return uintptr(com.EPointer)
	}
	f, ok := v.(Forwarder)
	if !ok || f.Real() == nil {
		return uintptr(com.ENotImpl)
	}

	ret := f.Real().Call(s.real, args...)
	if s.kind == kindForward && l.Status != nil {
		ret = uintptr(l.Status(com.HRESULT(ret)))
	}
	return ret
}
