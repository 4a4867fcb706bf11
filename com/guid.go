package com

import (
	ole "github.com/go-ole/go-ole"
)

// GUID is a COM interface or class identifier.
type GUID = ole.GUID

// Well-known identifiers.
var (
	IIDIUnknown      = MustGUID("{00000000-0000-0000-C000-000000000046}")
	IIDIClassFactory = MustGUID("{00000001-0000-0000-C000-000000000046}")
	GUIDNull         = &GUID{}
)

// MustGUID parses a registry-format GUID and panics on malformed input.
// It is meant for package-level identifier tables.
func MustGUID(s string) *GUID {
	g := ole.NewGUID(s)
	if g == nil {
		panic("com: malformed GUID " + s)
	}
	return g
}

// ReadGUID copies the GUID at p. It returns nil for a null pointer.
func ReadGUID(p uintptr) *GUID {
	if p == 0 {
		return nil
	}
	g := Read[GUID](p)
	return &g
}

// IsEqual reports whether a and b identify the same interface or class.
// A nil GUID equals nothing.
func IsEqual(a, b *GUID) bool {
	if a == nil || b == nil {
		return false
	}
	return ole.IsEqualGUID(a, b)
}

// Matches reports whether the GUID at p equals any of ids.
func Matches(p uintptr, ids ...*GUID) bool {
	g := ReadGUID(p)
	if g == nil {
		return false
	}
	for _, id := range ids {
		if IsEqual(g, id) {
			return true
		}
	}
	return false
}

// GUIDString formats the GUID at p for logs.
func GUIDString(p uintptr) string {
	g := ReadGUID(p)
	if g == nil {
		return "<null>"
	}
	return g.String()
}
