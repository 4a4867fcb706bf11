package com

import (
	"unicode/utf16"
	"unsafe"
)

// maxString bounds string reads from caller memory.
const maxString = 4096

var sink struct {
	enabled bool
	value   any
}

// escape forces x onto the heap. Heap values do not move, so their
// address stays valid across a native call.
func escape(x any) {
	if sink.enabled {
		sink.value = x
	}
}

// Addr returns the address of *p for passing to native code.
// The caller keeps p reachable until the native call returns.
func Addr[T any](p *T) uintptr {
	if p == nil {
		return 0
	}
	escape(p)
	return uintptr(unsafe.Pointer(p))
}

// At views caller memory at p as a *T.
func At[T any](p uintptr) *T {
	return (*T)(unsafe.Pointer(p))
}

// Read copies a T out of caller memory.
func Read[T any](p uintptr) T {
	return *(*T)(unsafe.Pointer(p))
}

// Write copies v into caller memory. It reports false for a null pointer.
func Write[T any](p uintptr, v T) bool {
	if p == 0 {
		return false
	}
	*(*T)(unsafe.Pointer(p)) = v
	return true
}

// ReadPtr reads a pointer-sized value.
func ReadPtr(p uintptr) uintptr {
	if p == 0 {
		return 0
	}
	return *(*uintptr)(unsafe.Pointer(p))
}

// WritePtr stores a pointer-sized value through an out parameter.
func WritePtr(p uintptr, v uintptr) bool {
	return Write(p, v)
}

// Slice views n consecutive T values starting at p.
func Slice[T any](p uintptr, n int) []T {
	if p == 0 || n <= 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(p)), n)
}

// GoString reads a NUL-terminated narrow string.
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	var b []byte
	for i := uintptr(0); i < maxString; i++ {
		c := *(*byte)(unsafe.Pointer(p + i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

// GoStringUTF16 reads a NUL-terminated UTF-16 string.
func GoStringUTF16(p uintptr) string {
	if p == 0 {
		return ""
	}
	var s []uint16
	for i := uintptr(0); i < maxString; i++ {
		c := *(*uint16)(unsafe.Pointer(p + i*2))
		if c == 0 {
			break
		}
		s = append(s, c)
	}
	return string(utf16.Decode(s))
}
