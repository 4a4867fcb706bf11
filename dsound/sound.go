package dsound

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// Sound proxies IDirectSound and IDirectSound8.
type Sound struct {
	lifetime.Object
	shim *Shim
	is8  bool
}

var soundLayout *vtable.Layout

func init() {
	soundLayout = vtable.Register(vtable.NewLayout("IDirectSound8",
		vtable.M2("QueryInterface", (*Sound).QueryInterface),
		vtable.M0("AddRef", (*Sound).AddRef),
		vtable.M0("Release", (*Sound).Release),
		vtable.M3("CreateSoundBuffer", (*Sound).CreateSoundBuffer),
		vtable.M1("GetCaps", (*Sound).GetCaps),
		vtable.M2("DuplicateSoundBuffer", (*Sound).DuplicateSoundBuffer),
		vtable.M2("SetCooperativeLevel", (*Sound).SetCooperativeLevel),
		vtable.Pass("Compact", 0),
		vtable.M1("GetSpeakerConfig", (*Sound).GetSpeakerConfig),
		vtable.M1("SetSpeakerConfig", (*Sound).SetSpeakerConfig),
		vtable.Pass("Initialize", 1),
		vtable.M1("VerifyCertification", (*Sound).VerifyCertification),
	))
}

func (s *Shim) newSound(real uintptr, is8 bool) uintptr {
	return s.wrap(soundLayout, lifetime.KindSound, &Sound{shim: s, is8: is8}, real)
}

// queryWrap asks the real object for riid and hands the caller a new
// proxy for the result.
func (s *Shim) queryWrap(o *lifetime.Object, riid, ppv uintptr, wrap func(real uintptr) uintptr) com.HRESULT {
	real, hr := o.QueryReal(riid)
	if hr.Failed() {
		com.WritePtr(ppv, 0)
		return hr
	}
	p := wrap(real)
	if p == 0 {
		com.WritePtr(ppv, 0)
		return DSErrOutOfMemory
	}
	com.WritePtr(ppv, p)
	return hr
}

func (p *Sound) QueryInterface(riid, ppv uintptr) com.HRESULT {
	self := []*com.GUID{IIDIDirectSound}
	if p.is8 {
		self = append(self, IIDIDirectSound8)
	}
	if hr, ok := p.QuerySelf(riid, ppv, self...); ok {
		return hr
	}
	if com.Matches(riid, IIDIDirectSound8) {
		return p.shim.queryWrap(&p.Object, riid, ppv, func(real uintptr) uintptr {
			return p.shim.newSound(real, true)
		})
	}
	return p.ForwardQuery(riid, ppv)
}

func (p *Sound) CreateSoundBuffer(pDesc, ppBuffer, outer uintptr) com.HRESULT {
	if ppBuffer == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(ppBuffer, 0)

	desc, err := ReadBufferDesc(pDesc)
	if err != nil {
		Logger().Warn("buffer descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}
	ApplyBufferOptions(desc, &p.shim.opts)

	real := new(uintptr)
	hr := com.HRESULT(p.Real().Call(soundCreateSoundBuffer, com.Addr(desc), com.Addr(real), outer))
	runtime.KeepAlive(desc)
	if hr.Failed() {
		return hr
	}

	primary := desc.Flags&DSBCapsPrimaryBuffer != 0
	buf := p.shim.newBuffer(*real, primary, false)
	if buf == 0 {
		return DSErrOutOfMemory
	}
	if primary && p.shim.opts.ForcePrimaryBufferFormat {
		p.shim.forcePrimaryFormat(*real)
	}
	com.WritePtr(ppBuffer, buf)
	return hr
}

func (s *Shim) forcePrimaryFormat(real uintptr) {
	obj := s.bind(real)
	if obj == nil {
		return
	}
	f := PrimaryFormat(&s.opts)
	hr := com.HRESULT(obj.Call(bufferSetFormat, com.Addr(f)))
	runtime.KeepAlive(f)
	if hr.Failed() {
		Logger().Warn("primary format not applied", zap.Stringer("status", hr))
	}
}

func (p *Sound) GetCaps(pCaps uintptr) com.HRESULT {
	hr := com.HRESULT(p.Real().Call(soundGetCaps, pCaps))
	if hr.Failed() || pCaps == 0 || com.Read[uint32](pCaps) < CapsSize {
		return hr
	}
	ApplyCaps(com.At[Caps](pCaps), &p.shim.opts)
	return hr
}

func (p *Sound) DuplicateSoundBuffer(original, ppDuplicate uintptr) com.HRESULT {
	if ppDuplicate == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(ppDuplicate, 0)

	real := new(uintptr)
	hr := com.HRESULT(p.Real().Call(soundDuplicateSoundBuffer, p.shim.reg.Unwrap(original), com.Addr(real)))
	if hr.Failed() {
		return hr
	}
	dup := p.shim.newBuffer(*real, false, false)
	if dup == 0 {
		return DSErrOutOfMemory
	}
	com.WritePtr(ppDuplicate, dup)
	return hr
}

func (p *Sound) SetCooperativeLevel(hwnd, level uintptr) com.HRESULT {
	return com.HRESULT(p.Real().Call(soundSetCooperativeLevel, hwnd,
		uintptr(CooperativeLevel(uint32(level), &p.shim.opts))))
}

func (p *Sound) GetSpeakerConfig(pConfig uintptr) com.HRESULT {
	if p.shim.opts.ForceSpeakerConfig {
		if !com.Write(pConfig, uint32(p.shim.opts.SpeakerConfig)) {
			return DSErrInvalidParam
		}
		return DSOK
	}
	return com.HRESULT(p.Real().Call(soundGetSpeakerConfig, pConfig))
}

func (p *Sound) SetSpeakerConfig(config uintptr) com.HRESULT {
	if p.shim.opts.PreventSpeakerSetup {
		Logger().Debug("speaker setup suppressed", zap.Uintptr("config", config))
		return DSOK
	}
	return com.HRESULT(p.Real().Call(soundSetSpeakerConfig, config))
}

func (p *Sound) VerifyCertification(pCertified uintptr) com.HRESULT {
	if p.shim.opts.ForceCertification {
		if !com.Write(pCertified, uint32(DSCertified)) {
			return DSErrInvalidParam
		}
		return DSOK
	}
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(soundVerifyCertification, pCertified))
}
