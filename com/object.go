package com

import (
	"unsafe"
)

// IUnknown slots shared by every interface.
const (
	SlotQueryInterface = 0
	SlotAddRef         = 1
	SlotRelease        = 2
)

// Object is a reference to an interface implemented outside the shim.
type Object interface {
	// Ptr returns the raw interface pointer.
	Ptr() uintptr

	// Call invokes method slot with the interface pointer prepended to args.
	Call(slot int, args ...uintptr) uintptr

	// AddRef increments the object's own reference count.
	AddRef() uint32

	// Release decrements the object's own reference count.
	Release() uint32
}

// Binder turns a raw interface pointer returned by a real call into an Object.
type Binder func(ptr uintptr) Object

// Bind is the production Binder.
func Bind(ptr uintptr) Object {
	if ptr == 0 {
		return nil
	}
	return Ptr(ptr)
}

// Ptr is a native interface pointer.
type Ptr uintptr

// Ptr returns the raw interface pointer.
func (p Ptr) Ptr() uintptr {
	return uintptr(p)
}

// Call reads slot from the object's method table and invokes it.
func (p Ptr) Call(slot int, args ...uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(p))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(slot)*unsafe.Sizeof(uintptr(0))))

	full := make([]uintptr, 0, len(args)+1)
	full = append(full, uintptr(p))
	full = append(full, args...)
	return System.Invoke(fn, full...)
}

// AddRef calls IUnknown::AddRef.
func (p Ptr) AddRef() uint32 {
	return uint32(p.Call(SlotAddRef))
}

// Release calls IUnknown::Release.
func (p Ptr) Release() uint32 {
	return uint32(p.Call(SlotRelease))
}
