//go:build !(windows || ((darwin || linux || freebsd) && (amd64 || arm64)))

package com

type systemNative struct{}

func (systemNative) NewCallback(fn any) uintptr {
	return 0
}

func (systemNative) Invoke(fn uintptr, args ...uintptr) uintptr {
	return uintptr(EFail)
}
