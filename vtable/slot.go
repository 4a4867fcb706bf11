package vtable

import (
	"github.com/wippyai/dxshim/com"
)

// Result is the set of return types a slot implementation may use.
type Result interface {
	~uint32 | ~int32 | ~uintptr
}

type slotKind uint8

const (
	kindMethod slotKind = iota
	kindForward
	kindForwardValue
)

// sameSlot marks a forwarder whose real slot equals its own position.
const sameSlot = -1

// Slot is one entry of a legacy method table.
type Slot struct {
	Name  string
	Arity int
	real  int
	kind  slotKind
	call  func(r *Registry, this uintptr, args []uintptr) uintptr
}

// Forwarded reports whether the slot calls straight into the real object.
func (s Slot) Forwarded() bool {
	return s.kind != kindMethod
}

// Target returns the real slot a forwarder calls, or -1 for Go methods.
func (s Slot) Target() int {
	if s.kind == kindMethod {
		return -1
	}
	return s.real
}

// TranslatesStatus reports whether a forwarder maps its result through the layout's status table.
func (s Slot) TranslatesStatus() bool {
	return s.kind == kindForward
}

// Pass forwards to the same slot of the real object.
func Pass(name string, arity int) Slot {
	return Slot{Name: name, Arity: arity, real: sameSlot, kind: kindForward}
}

// PassValue forwards to the same slot and returns the raw result.
func PassValue(name string, arity int) Slot {
	return Slot{Name: name, Arity: arity, real: sameSlot, kind: kindForwardValue}
}

// Forward forwards to real slot target and translates the status result.
func Forward(name string, arity, target int) Slot {
	return Slot{Name: name, Arity: arity, real: target, kind: kindForward}
}

// ForwardValue forwards to real slot target and returns the raw result
// (counts, handles, booleans).
func ForwardValue(name string, arity, target int) Slot {
	return Slot{Name: name, Arity: arity, real: target, kind: kindForwardValue}
}

func resolve[T any](r *Registry, this uintptr) *T {
	v, ok := r.Lookup(this)
	if !ok {
		return nil
	}
	p, _ := v.(*T)
	return p
}

func method[T any](name string, arity int, fn func(p *T, a []uintptr) uintptr) Slot {
	return Slot{
		Name:  name,
		Arity: arity,
		real:  sameSlot,
		kind:  kindMethod,
		call: func(r *Registry, this uintptr, a []uintptr) uintptr {
			p := resolve[T](r, this)
			if p == nil {
				return uintptr(com.EPointer)
			}
			return fn(p, a)
		},
	}
}

// M0 binds a method taking no arguments besides the receiver.
func M0[T any, R Result](name string, f func(*T) R) Slot {
	return method(name, 0, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p))
	})
}

// M1 binds a one-argument method.
func M1[T any, R Result](name string, f func(*T, uintptr) R) Slot {
	return method(name, 1, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0]))
	})
}

// M2 binds a two-argument method.
func M2[T any, R Result](name string, f func(*T, uintptr, uintptr) R) Slot {
	return method(name, 2, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1]))
	})
}

// M3 binds a three-argument method.
func M3[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 3, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2]))
	})
}

// M4 binds a four-argument method.
func M4[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 4, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2], a[3]))
	})
}

// M5 binds a five-argument method.
func M5[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 5, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2], a[3], a[4]))
	})
}

// M6 binds a six-argument method.
func M6[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 6, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2], a[3], a[4], a[5]))
	})
}

// M7 binds a seven-argument method.
func M7[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 7, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2], a[3], a[4], a[5], a[6]))
	})
}

// M8 binds an eight-argument method.
func M8[T any, R Result](name string, f func(*T, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr) R) Slot {
	return method(name, 8, func(p *T, a []uintptr) uintptr {
		return uintptr(f(p, a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7]))
	})
}
