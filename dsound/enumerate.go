package dsound

import (
	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/resource"
)

const enumTypeID = uint32(lifetime.KindEnumerator)

// enumContext links one enumeration call's caller callback and context to
// the translation callback given to the real library.
type enumContext struct {
	callback uintptr
	context  uintptr
	wide     bool
	visit    func(guid uintptr, desc, module string) bool
}

// Device is one enumerated device record.
type Device struct {
	GUID        string
	Description string
	Module      string
}

func (s *Shim) enumCallback() uintptr {
	s.enumOnce.Do(func() {
		s.enumCB = s.native.NewCallback(s.onDevice)
	})
	return s.enumCB
}

// onDevice receives each record from the real library, in the real
// library's order, and returns the caller's continue or stop answer.
func (s *Shim) onDevice(guid, desc, module, ctx uintptr) uintptr {
	ec, ok := s.enums.Get(resource.Handle(ctx))
	if !ok {
		return 0
	}

	var d, m string
	if ec.wide {
		d, m = com.GoStringUTF16(desc), com.GoStringUTF16(module)
	} else {
		d, m = com.GoString(desc), com.GoString(module)
	}
	Logger().Debug("device enumerated",
		zap.String("guid", com.GUIDString(guid)),
		zap.String("description", d),
		zap.String("module", m))

	if ec.visit != nil {
		if ec.visit(guid, d, m) {
			return 1
		}
		return 0
	}
	return s.native.Invoke(ec.callback, guid, desc, module, ec.context)
}

func (s *Shim) enumerate(proc string, ec *enumContext) com.HRESULT {
	if s.surface.Proc(proc) == 0 {
		return DSErrNoDriver
	}
	h := s.enums.Insert(ec)
	if h == 0 {
		return DSErrOutOfMemory
	}
	defer s.enums.Remove(h)

	hr, _ := s.call(proc, s.enumCallback(), uintptr(h))
	return hr
}

func (s *Shim) enumerateFor(proc string, callback, context uintptr, wide bool) com.HRESULT {
	if callback == 0 {
		return DSErrInvalidParam
	}
	return s.enumerate(proc, &enumContext{callback: callback, context: context, wide: wide})
}

// DirectSoundEnumerateA enumerates render devices with narrow strings.
func (s *Shim) DirectSoundEnumerateA(callback, context uintptr) com.HRESULT {
	return s.enumerateFor(ProcDirectSoundEnumerateA, callback, context, false)
}

// DirectSoundEnumerateW enumerates render devices with wide strings.
func (s *Shim) DirectSoundEnumerateW(callback, context uintptr) com.HRESULT {
	return s.enumerateFor(ProcDirectSoundEnumerateW, callback, context, true)
}

// DirectSoundCaptureEnumerateA enumerates capture devices with narrow strings.
func (s *Shim) DirectSoundCaptureEnumerateA(callback, context uintptr) com.HRESULT {
	return s.enumerateFor(ProcDirectSoundCaptureEnumerateA, callback, context, false)
}

// DirectSoundCaptureEnumerateW enumerates capture devices with wide strings.
func (s *Shim) DirectSoundCaptureEnumerateW(callback, context uintptr) com.HRESULT {
	return s.enumerateFor(ProcDirectSoundCaptureEnumerateW, callback, context, true)
}

// Devices lists render devices, or capture devices when capture is set.
func (s *Shim) Devices(capture bool) ([]Device, com.HRESULT) {
	proc := ProcDirectSoundEnumerateA
	if capture {
		proc = ProcDirectSoundCaptureEnumerateA
	}
	var out []Device
	hr := s.enumerate(proc, &enumContext{
		visit: func(guid uintptr, desc, module string) bool {
			d := Device{Description: desc, Module: module}
			if guid != 0 {
				d.GUID = com.GUIDString(guid)
			}
			out = append(out, d)
			return true
		},
	})
	return out, hr
}

// TraceDevices logs every render and capture device at Info.
func (s *Shim) TraceDevices() {
	for _, capture := range []bool{false, true} {
		devices, hr := s.Devices(capture)
		if hr.Failed() {
			Logger().Info("device enumeration failed", zap.Bool("capture", capture), zap.Stringer("status", hr))
			continue
		}
		for _, d := range devices {
			Logger().Info("device",
				zap.Bool("capture", capture),
				zap.String("guid", d.GUID),
				zap.String("description", d.Description),
				zap.String("module", d.Module))
		}
	}
}
