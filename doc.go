// Package dxshim builds drop-in replacements for legacy Windows multimedia
// libraries. Each replacement exports the old library's entry points,
// hands callers proxy objects with the old binary method tables, and runs
// the work on a real library: the system DirectSound for dsound.dll, and
// Direct3D 9 for d3d8.dll.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	dxshim/
//	├── com/         HRESULT, GUID, native call layer and memory helpers
//	├── vtable/      Ordered method tables and the registry of live proxies
//	├── lifetime/    Reference counting shared by every proxy
//	├── loader/      Finds the real library and resolves its symbols
//	├── resource/    Handle tables with lifecycle events
//	├── dsound/      DirectSound proxies and option translations
//	├── d3d8/        Direct3D 8 proxies translated onto Direct3D 9
//	├── config/      INI options snapshot
//	├── diag/        Optional debug instrumentation
//	├── errors/      Structured error types for logging
//	├── cmd/dsound   c-shared dsound.dll
//	├── cmd/d3d8     c-shared d3d8.dll
//	└── cmd/shiminspect  Prints method tables, translations and options
//
// # Proxies
//
// A proxy is a native object whose first word points at a method table
// built from a vtable.Layout. The slot order is the binary contract with
// the caller. Each slot is either a Go method or a forwarder to a slot of
// the real object, optionally passing the result through the layout's
// status translation.
//
//	layout := vtable.Register(vtable.NewLayout("IDirectSoundCapture",
//	    vtable.M2("QueryInterface", (*Capture).QueryInterface),
//	    vtable.M0("AddRef", (*Capture).AddRef),
//	    vtable.M0("Release", (*Capture).Release),
//	    vtable.M3("CreateCaptureBuffer", (*Capture).CreateCaptureBuffer),
//	    vtable.Pass("GetCaps", 1),
//	    vtable.Pass("Initialize", 1),
//	))
//
// # Lifetime
//
// Every proxy embeds lifetime.Object. The proxy's count starts at one and
// the real object is released exactly once, when the count reaches zero.
// Proxies that hand out a parent (GetDevice, GetDirect3D) return the live
// parent proxy when there is one and wrap the real parent anew otherwise.
//
// # Thread Safety
//
// Shims, registries and proxies are safe for concurrent use. Calls on one
// real object are serialized only as far as the real library does it.
package dxshim
