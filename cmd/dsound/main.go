// Command dsound builds dsound.dll: a DirectSound library that wraps the
// real one and applies the configured compatibility options.
//
//	GOOS=windows GOARCH=386 CGO_ENABLED=1 go build -buildmode=c-shared -o dsound.dll ./cmd/dsound
//
// Names and ordinals match the system library (dsound.def).
package main

/*
#cgo windows LDFLAGS: ${SRCDIR}/dsound.def
*/
import "C"

import (
	"sync"

	"github.com/wippyai/dxshim/dsound"
	"github.com/wippyai/dxshim/internal/host"
)

var (
	once sync.Once
	shim *dsound.Shim
)

func instance() *dsound.Shim {
	once.Do(func() {
		cfg, log := host.Setup("dsound")
		dsound.SetLogger(log.Named("dsound"))
		shim = dsound.Open(cfg)
	})
	return shim
}

//export goDirectSoundCreate
func goDirectSoundCreate(guid, pp, outer uintptr) uint32 {
	return uint32(instance().DirectSoundCreate(guid, pp, outer))
}

//export goDirectSoundCreate8
func goDirectSoundCreate8(guid, pp, outer uintptr) uint32 {
	return uint32(instance().DirectSoundCreate8(guid, pp, outer))
}

//export goDirectSoundCaptureCreate
func goDirectSoundCaptureCreate(guid, pp, outer uintptr) uint32 {
	return uint32(instance().DirectSoundCaptureCreate(guid, pp, outer))
}

//export goDirectSoundCaptureCreate8
func goDirectSoundCaptureCreate8(guid, pp, outer uintptr) uint32 {
	return uint32(instance().DirectSoundCaptureCreate8(guid, pp, outer))
}

//export goDirectSoundFullDuplexCreate
func goDirectSoundFullDuplexCreate(captureGUID, renderGUID, captureDesc, renderDesc, hwnd, level,
	ppDuplex, ppCapture, ppRender, outer uintptr) uint32 {
	return uint32(instance().DirectSoundFullDuplexCreate(captureGUID, renderGUID, captureDesc, renderDesc,
		hwnd, level, ppDuplex, ppCapture, ppRender, outer))
}

//export goDirectSoundEnumerateA
func goDirectSoundEnumerateA(callback, context uintptr) uint32 {
	return uint32(instance().DirectSoundEnumerateA(callback, context))
}

//export goDirectSoundEnumerateW
func goDirectSoundEnumerateW(callback, context uintptr) uint32 {
	return uint32(instance().DirectSoundEnumerateW(callback, context))
}

//export goDirectSoundCaptureEnumerateA
func goDirectSoundCaptureEnumerateA(callback, context uintptr) uint32 {
	return uint32(instance().DirectSoundCaptureEnumerateA(callback, context))
}

//export goDirectSoundCaptureEnumerateW
func goDirectSoundCaptureEnumerateW(callback, context uintptr) uint32 {
	return uint32(instance().DirectSoundCaptureEnumerateW(callback, context))
}

//export goGetDeviceID
func goGetDeviceID(src, dest uintptr) uint32 {
	return uint32(instance().GetDeviceID(src, dest))
}

//export goDllCanUnloadNow
func goDllCanUnloadNow() uint32 {
	return uint32(instance().DllCanUnloadNow())
}

//export goDllGetClassObject
func goDllGetClassObject(clsid, iid, ppv uintptr) uint32 {
	return uint32(instance().DllGetClassObject(clsid, iid, ppv))
}

func main() {}
