//go:build windows || ((darwin || linux || freebsd) && (amd64 || arm64))

package com

import (
	"github.com/ebitengine/purego"
)

type systemNative struct{}

// NewCallback uses the stdcall convention on windows/386 and the platform
// C convention elsewhere.
func (systemNative) NewCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}

func (systemNative) Invoke(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}
