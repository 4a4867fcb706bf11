// Command d3d8 builds d3d8.dll: a Direct3D 8 runtime that runs every
// call on the system Direct3D 9.
//
//	GOOS=windows GOARCH=386 CGO_ENABLED=1 go build -buildmode=c-shared -o d3d8.dll ./cmd/d3d8
//
// The exported names and ordinals come from d3d8.def, which names the
// decorated 32-bit symbols. The C wrappers in exports.c give each entry
// point the stdcall convention callers expect.
package main

/*
#cgo windows LDFLAGS: ${SRCDIR}/d3d8.def
*/
import "C"

import (
	"sync"

	"github.com/wippyai/dxshim/d3d8"
	"github.com/wippyai/dxshim/internal/host"
)

var (
	once sync.Once
	shim *d3d8.Shim
)

// instance creates the process shim on the first call into the module.
func instance() *d3d8.Shim {
	once.Do(func() {
		cfg, log := host.Setup("d3d8")
		d3d8.SetLogger(log.Named("d3d8"))
		shim = d3d8.Open(cfg)
	})
	return shim
}

//export goDirect3DCreate8
func goDirect3DCreate8(sdkVersion uint32) uintptr {
	return instance().Direct3DCreate8(sdkVersion)
}

//export goValidateVertexShader
func goValidateVertexShader(shader, decl, caps, returnErrors, errs uintptr) uint32 {
	return uint32(instance().ValidateVertexShader(shader, decl, caps, returnErrors, errs))
}

//export goValidatePixelShader
func goValidatePixelShader(shader, caps, returnErrors, errs uintptr) uint32 {
	return uint32(instance().ValidatePixelShader(shader, caps, returnErrors, errs))
}

//export goDebugSetMute
func goDebugSetMute() {
	instance().DebugSetMute()
}

func main() {}
