package lifetime

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/vtable"
)

// Object is the lifetime core embedded by every proxy.
//
// It pairs the proxy's own reference count with the single reference it
// owns on the real object. AddRef and Release touch only the proxy count;
// the real object is released exactly once, when the proxy count reaches
// zero, and the proxy's native object is unbound right after.
type Object struct {
	refs     atomic.Uint32
	released atomic.Bool

	real    com.Object
	kind    Kind
	ptr     uintptr
	detach  func()
	onFinal []func()
}

// Proxy is satisfied by any type embedding Object.
type Proxy interface {
	Attach(real com.Object, kind Kind, ptr uintptr, detach func())
}

// Wrap binds p into reg under layout l and hands it ownership of real.
// It returns the address given to callers, or 0 if the registry refused
// the proxy, in which case real has been released.
func Wrap(reg *vtable.Registry, l *vtable.Layout, kind Kind, p Proxy, real com.Object) uintptr {
	ptr := reg.Bind(l, uint32(kind), p)
	if ptr == 0 {
		real.Release()
		return 0
	}
	p.Attach(real, kind, ptr, func() { reg.Unbind(ptr) })
	Logger().Debug("proxy created",
		zap.Stringer("kind", kind),
		zap.Uintptr("proxy", ptr),
		zap.Uintptr("real", real.Ptr()))
	return ptr
}

// Attach initialises the object with a count of one.
func (o *Object) Attach(real com.Object, kind Kind, ptr uintptr, detach func()) {
	o.real = real
	o.kind = kind
	o.ptr = ptr
	o.detach = detach
	o.refs.Store(1)
}

// OnFinal registers fn to run on the final release, before the real
// object is released. Register hooks before the proxy is shared.
func (o *Object) OnFinal(fn func()) {
	o.onFinal = append(o.onFinal, fn)
}

// AddRef increments the proxy count and returns the new value.
func (o *Object) AddRef() uint32 {
	return o.refs.Add(1)
}

// TryAddRef increments the count only while the proxy is alive.
func (o *Object) TryAddRef() bool {
	for {
		n := o.refs.Load()
		if n == 0 {
			return false
		}
		if o.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release decrements the proxy count and returns the new value.
// Releasing a dead proxy returns 0 and has no effect.
func (o *Object) Release() uint32 {
	for {
		n := o.refs.Load()
		if n == 0 {
			return 0
		}
		if o.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				o.finalize()
			}
			return n - 1
		}
	}
}

func (o *Object) finalize() {
	if !o.released.CompareAndSwap(false, true) {
		return
	}
	for _, fn := range o.onFinal {
		fn()
	}
	if o.real != nil {
		o.real.Release()
	}
	if o.detach != nil {
		o.detach()
	}
	Logger().Debug("proxy released",
		zap.Stringer("kind", o.kind),
		zap.Uintptr("proxy", o.ptr))
}

// Refs returns the current proxy count.
func (o *Object) Refs() uint32 {
	return o.refs.Load()
}

// Released reports whether the real object has been released.
func (o *Object) Released() bool {
	return o.released.Load()
}

// Real returns the owned real object.
func (o *Object) Real() com.Object {
	return o.real
}

// Native returns the address handed to callers.
func (o *Object) Native() uintptr {
	return o.ptr
}

// Kind returns the interface shape the proxy presents.
func (o *Object) Kind() Kind {
	return o.kind
}

// QuerySelf answers QueryInterface for IUnknown and iids with the proxy
// itself. ok is false when riid names something else.
func (o *Object) QuerySelf(riid, ppv uintptr, iids ...*com.GUID) (hr com.HRESULT, ok bool) {
	if ppv == 0 {
		return com.EPointer, true
	}
	if riid == 0 {
		com.WritePtr(ppv, 0)
		return com.EInvalidArg, true
	}
	if com.Matches(riid, com.IIDIUnknown) || com.Matches(riid, iids...) {
		o.AddRef()
		com.WritePtr(ppv, o.ptr)
		return com.OK, true
	}
	return 0, false
}

// QueryReal asks the real object for riid and returns the new reference.
func (o *Object) QueryReal(riid uintptr) (uintptr, com.HRESULT) {
	out := new(uintptr)
	hr := com.HRESULT(o.real.Call(com.SlotQueryInterface, riid, com.Addr(out)))
	if hr.Failed() {
		return 0, hr
	}
	return *out, hr
}

// ForwardQuery passes QueryInterface to the real object unmodified.
// The caller receives a real interface pointer.
func (o *Object) ForwardQuery(riid, ppv uintptr) com.HRESULT {
	return com.HRESULT(o.real.Call(com.SlotQueryInterface, riid, ppv))
}
