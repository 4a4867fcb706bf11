// Package vtable builds the method tables legacy callers see.
//
// A legacy interface is an ordered list of slots. Its physical order is
// the binary contract, so each proxied interface is described by an
// explicit Layout rather than by Go embedding:
//
//	var bufferLayout = vtable.NewLayout("IDirectSoundBuffer8",
//		vtable.M2("QueryInterface", (*Buffer).QueryInterface),
//		vtable.M0("AddRef", (*Buffer).AddRef),
//		vtable.M0("Release", (*Buffer).Release),
//		vtable.Pass("GetCaps", 1),
//		...
//	)
//
// M0..M8 bind Go methods. Pass and Forward send the call straight to the
// real object (same slot, or a different slot when the real interface
// reorders its methods). Forward results go through the layout's Status
// translation; ForwardValue and PassValue return the raw word for methods
// that return counts or handles.
//
// A Registry turns layouts into native tables (one callback per slot,
// built once per layout) and allocates a native object for every proxy.
// The object's address is what callers receive; Lookup maps it back to
// the proxy. Addresses the registry did not issue resolve to nothing and
// the slot answers E_POINTER.
package vtable
