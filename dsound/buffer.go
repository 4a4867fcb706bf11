package dsound

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// Buffer proxies IDirectSoundBuffer and IDirectSoundBuffer8.
type Buffer struct {
	lifetime.Object
	shim    *Shim
	primary bool
	is8     bool
}

// Buffer3D proxies IDirectSound3DBuffer.
type Buffer3D struct {
	lifetime.Object
	shim *Shim
}

// Listener proxies IDirectSound3DListener.
type Listener struct {
	lifetime.Object
	shim *Shim
}

var (
	bufferLayout   *vtable.Layout
	buffer3DLayout *vtable.Layout
	listenerLayout *vtable.Layout
)

func init() {
	bufferLayout = vtable.Register(vtable.NewLayout("IDirectSoundBuffer8",
		vtable.M2("QueryInterface", (*Buffer).QueryInterface),
		vtable.M0("AddRef", (*Buffer).AddRef),
		vtable.M0("Release", (*Buffer).Release),
		vtable.Pass("GetCaps", 1),
		vtable.M2("GetCurrentPosition", (*Buffer).GetCurrentPosition),
		vtable.Pass("GetFormat", 3),
		vtable.Pass("GetVolume", 1),
		vtable.Pass("GetPan", 1),
		vtable.Pass("GetFrequency", 1),
		vtable.Pass("GetStatus", 1),
		vtable.M2("Initialize", (*Buffer).Initialize),
		vtable.Pass("Lock", 7),
		vtable.Pass("Play", 3),
		vtable.Pass("SetCurrentPosition", 1),
		vtable.M1("SetFormat", (*Buffer).SetFormat),
		vtable.Pass("SetVolume", 1),
		vtable.Pass("SetPan", 1),
		vtable.Pass("SetFrequency", 1),
		vtable.Pass("Stop", 0),
		vtable.Pass("Unlock", 4),
		vtable.Pass("Restore", 0),
		vtable.M3("SetFX", (*Buffer).SetFX),
		vtable.M3("AcquireResources", (*Buffer).AcquireResources),
		vtable.M4("GetObjectInPath", (*Buffer).GetObjectInPath),
	))

	buffer3DLayout = vtable.Register(vtable.NewLayout("IDirectSound3DBuffer",
		vtable.M2("QueryInterface", (*Buffer3D).QueryInterface),
		vtable.M0("AddRef", (*Buffer3D).AddRef),
		vtable.M0("Release", (*Buffer3D).Release),
		vtable.Pass("GetAllParameters", 1),
		vtable.Pass("GetConeAngles", 2),
		vtable.Pass("GetConeOrientation", 1),
		vtable.Pass("GetConeOutsideVolume", 1),
		vtable.Pass("GetMaxDistance", 1),
		vtable.Pass("GetMinDistance", 1),
		vtable.Pass("GetMode", 1),
		vtable.Pass("GetPosition", 1),
		vtable.Pass("GetVelocity", 1),
		vtable.Pass("SetAllParameters", 2),
		vtable.Pass("SetConeAngles", 3),
		vtable.Pass("SetConeOrientation", 4),
		vtable.Pass("SetConeOutsideVolume", 2),
		vtable.Pass("SetMaxDistance", 2),
		vtable.Pass("SetMinDistance", 2),
		vtable.Pass("SetMode", 2),
		vtable.Pass("SetPosition", 4),
		vtable.Pass("SetVelocity", 4),
	))

	listenerLayout = vtable.Register(vtable.NewLayout("IDirectSound3DListener",
		vtable.M2("QueryInterface", (*Listener).QueryInterface),
		vtable.M0("AddRef", (*Listener).AddRef),
		vtable.M0("Release", (*Listener).Release),
		vtable.Pass("GetAllParameters", 1),
		vtable.Pass("GetDistanceFactor", 1),
		vtable.Pass("GetDopplerFactor", 1),
		vtable.Pass("GetOrientation", 2),
		vtable.Pass("GetPosition", 1),
		vtable.Pass("GetRolloffFactor", 1),
		vtable.Pass("GetVelocity", 1),
		vtable.Pass("SetAllParameters", 2),
		vtable.Pass("SetDistanceFactor", 2),
		vtable.Pass("SetDopplerFactor", 2),
		vtable.Pass("SetOrientation", 7),
		vtable.Pass("SetPosition", 4),
		vtable.Pass("SetRolloffFactor", 2),
		vtable.Pass("SetVelocity", 4),
		vtable.Pass("CommitDeferredSettings", 0),
	))
}

func (s *Shim) newBuffer(real uintptr, primary, is8 bool) uintptr {
	return s.wrap(bufferLayout, lifetime.KindBuffer, &Buffer{shim: s, primary: primary, is8: is8}, real)
}

func (s *Shim) newBuffer3D(real uintptr) uintptr {
	return s.wrap(buffer3DLayout, lifetime.KindBuffer3D, &Buffer3D{shim: s}, real)
}

func (s *Shim) newListener(real uintptr) uintptr {
	return s.wrap(listenerLayout, lifetime.KindListener, &Listener{shim: s}, real)
}

func (p *Buffer) QueryInterface(riid, ppv uintptr) com.HRESULT {
	self := []*com.GUID{IIDIDirectSoundBuffer}
	if p.is8 {
		self = append(self, IIDIDirectSoundBuffer8)
	}
	if hr, ok := p.QuerySelf(riid, ppv, self...); ok {
		return hr
	}

	s := p.shim
	switch {
	case com.Matches(riid, IIDIDirectSoundBuffer8):
		return s.queryWrap(&p.Object, riid, ppv, func(real uintptr) uintptr {
			return s.newBuffer(real, p.primary, true)
		})
	case com.Matches(riid, IIDIDirectSound3DBuffer):
		return s.queryWrap(&p.Object, riid, ppv, s.newBuffer3D)
	case com.Matches(riid, IIDIDirectSound3DListener):
		return s.queryWrap(&p.Object, riid, ppv, s.newListener)
	}
	return p.ForwardQuery(riid, ppv)
}

// GetCurrentPosition reports the write cursor at the play cursor for a
// stopped buffer when the stopped-driver workaround is on.
func (p *Buffer) GetCurrentPosition(pPlay, pWrite uintptr) com.HRESULT {
	hr := com.HRESULT(p.Real().Call(bufferGetCurrentPosition, pPlay, pWrite))
	if hr.Failed() || !p.shim.opts.StoppedDriverWorkaround || pPlay == 0 || pWrite == 0 {
		return hr
	}

	status := new(uint32)
	if com.HRESULT(p.Real().Call(bufferGetStatus, com.Addr(status))).Failed() {
		return hr
	}
	if *status&DSBStatusPlaying == 0 {
		com.Write(pWrite, com.Read[uint32](pPlay))
	}
	return hr
}

func (p *Buffer) Initialize(pSound, pDesc uintptr) com.HRESULT {
	desc, err := ReadBufferDesc(pDesc)
	if err != nil {
		Logger().Warn("buffer descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}
	ApplyBufferOptions(desc, &p.shim.opts)
	hr := com.HRESULT(p.Real().Call(bufferInitialize, p.shim.reg.Unwrap(pSound), com.Addr(desc)))
	runtime.KeepAlive(desc)
	return hr
}

func (p *Buffer) SetFormat(pFormat uintptr) com.HRESULT {
	if p.primary && p.shim.opts.ForcePrimaryBufferFormat {
		f := PrimaryFormat(&p.shim.opts)
		hr := com.HRESULT(p.Real().Call(bufferSetFormat, com.Addr(f)))
		runtime.KeepAlive(f)
		return hr
	}
	return com.HRESULT(p.Real().Call(bufferSetFormat, pFormat))
}

func (p *Buffer) SetFX(count, pDesc, pResults uintptr) com.HRESULT {
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(bufferSetFX, count, pDesc, pResults))
}

func (p *Buffer) AcquireResources(flags, count, pResults uintptr) com.HRESULT {
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(bufferAcquireResources, flags, count, pResults))
}

// GetObjectInPath returns effect objects unwrapped; effects are not
// among the proxied interfaces.
func (p *Buffer) GetObjectInPath(guidObject, index, riid, ppObject uintptr) com.HRESULT {
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(bufferGetObjectInPath, guidObject, index, riid, ppObject))
}

func (p *Buffer3D) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, IIDIDirectSound3DBuffer); ok {
		return hr
	}
	s := p.shim
	if is8 := com.Matches(riid, IIDIDirectSoundBuffer8); is8 || com.Matches(riid, IIDIDirectSoundBuffer) {
		return s.queryWrap(&p.Object, riid, ppv, func(real uintptr) uintptr {
			return s.newBuffer(real, false, is8)
		})
	}
	return p.ForwardQuery(riid, ppv)
}

func (p *Listener) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, IIDIDirectSound3DListener); ok {
		return hr
	}
	s := p.shim
	if is8 := com.Matches(riid, IIDIDirectSoundBuffer8); is8 || com.Matches(riid, IIDIDirectSoundBuffer) {
		return s.queryWrap(&p.Object, riid, ppv, func(real uintptr) uintptr {
			return s.newBuffer(real, true, is8)
		})
	}
	return p.ForwardQuery(riid, ppv)
}
