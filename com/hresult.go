package com

import (
	"fmt"
	"sync"
)

// HRESULT is a COM status code. Negative values (high bit set) are failures.
type HRESULT uint32

// Generic COM status codes.
const (
	OK                      HRESULT = 0x00000000
	False                   HRESULT = 0x00000001
	ENotImpl                HRESULT = 0x80004001
	ENoInterface            HRESULT = 0x80004002
	EPointer                HRESULT = 0x80004003
	EFail                   HRESULT = 0x80004005
	EAccessDenied           HRESULT = 0x80070005
	EOutOfMemory            HRESULT = 0x8007000E
	EInvalidArg             HRESULT = 0x80070057
	ClassENoAggregation     HRESULT = 0x80040110
	ClassEClassNotAvailable HRESULT = 0x80040111
)

// Failed reports whether h is a failure code.
func (h HRESULT) Failed() bool {
	return int32(h) < 0
}

// Succeeded reports whether h is a success code.
func (h HRESULT) Succeeded() bool {
	return int32(h) >= 0
}

// String returns the registered name of h, or its hex value.
func (h HRESULT) String() string {
	namesMu.RLock()
	name, ok := names[h]
	namesMu.RUnlock()
	if ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(h))
}

var (
	namesMu sync.RWMutex
	names   = map[HRESULT]string{
		OK:                      "S_OK",
		False:                   "S_FALSE",
		ENotImpl:                "E_NOTIMPL",
		ENoInterface:            "E_NOINTERFACE",
		EPointer:                "E_POINTER",
		EFail:                   "E_FAIL",
		EAccessDenied:           "E_ACCESSDENIED",
		EOutOfMemory:            "E_OUTOFMEMORY",
		EInvalidArg:             "E_INVALIDARG",
		ClassENoAggregation:     "CLASS_E_NOAGGREGATION",
		ClassEClassNotAvailable: "CLASS_E_CLASSNOTAVAILABLE",
	}
)

// RegisterNames adds status code names used by String.
// Generic COM names are never overridden.
func RegisterNames(m map[HRESULT]string) {
	namesMu.Lock()
	defer namesMu.Unlock()
	for h, n := range m {
		if _, ok := names[h]; ok {
			continue
		}
		names[h] = n
	}
}
