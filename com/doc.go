// Package com is the native call layer shared by the shims.
//
// It models just enough of COM to sit between a legacy caller and a real
// implementation: status codes (HRESULT), interface identifiers (GUID),
// references to interfaces implemented outside the shim (Object), and the
// two native primitives every shim needs (Native): turning a Go function
// into a C-callable function pointer, and invoking a C function pointer.
//
// # Calling Real Objects
//
// A real interface pointer points at a pointer to its method table. Ptr
// reads slot N of that table and invokes it with the object as the first
// argument:
//
//	dev := com.Ptr(raw)
//	hr := com.HRESULT(dev.Call(41)) // IDirect3DDevice9::BeginScene
//
// # Memory
//
// Structures exchanged with native code are plain Go structs with the
// C layout. Addr returns the address of a heap-allocated value so that it
// stays put for the duration of a native call; Read and Write copy
// structures in and out of caller-owned memory.
package com
