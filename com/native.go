package com

// Native provides the two primitives the shim needs from the platform.
type Native interface {
	// NewCallback returns a C-callable function pointer for fn.
	// fn takes and returns uintptr-sized values only.
	NewCallback(fn any) uintptr

	// Invoke calls the C function at fn and returns its primary result.
	Invoke(fn uintptr, args ...uintptr) uintptr
}

// System is the platform implementation used outside tests.
var System Native = systemNative{}
