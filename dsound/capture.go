package dsound

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// Capture proxies IDirectSoundCapture.
type Capture struct {
	lifetime.Object
	shim *Shim
}

// CaptureBuffer proxies IDirectSoundCaptureBuffer and IDirectSoundCaptureBuffer8.
type CaptureBuffer struct {
	lifetime.Object
	shim *Shim
	is8  bool
}

// Duplex proxies IDirectSoundFullDuplex.
type Duplex struct {
	lifetime.Object
	shim *Shim
}

var (
	captureLayout       *vtable.Layout
	captureBufferLayout *vtable.Layout
	duplexLayout        *vtable.Layout
)

func init() {
	captureLayout = vtable.Register(vtable.NewLayout("IDirectSoundCapture",
		vtable.M2("QueryInterface", (*Capture).QueryInterface),
		vtable.M0("AddRef", (*Capture).AddRef),
		vtable.M0("Release", (*Capture).Release),
		vtable.M3("CreateCaptureBuffer", (*Capture).CreateCaptureBuffer),
		vtable.Pass("GetCaps", 1),
		vtable.Pass("Initialize", 1),
	))

	captureBufferLayout = vtable.Register(vtable.NewLayout("IDirectSoundCaptureBuffer8",
		vtable.M2("QueryInterface", (*CaptureBuffer).QueryInterface),
		vtable.M0("AddRef", (*CaptureBuffer).AddRef),
		vtable.M0("Release", (*CaptureBuffer).Release),
		vtable.Pass("GetCaps", 1),
		vtable.Pass("GetCurrentPosition", 2),
		vtable.Pass("GetFormat", 3),
		vtable.Pass("GetStatus", 1),
		vtable.M2("Initialize", (*CaptureBuffer).Initialize),
		vtable.Pass("Lock", 7),
		vtable.Pass("Start", 1),
		vtable.Pass("Stop", 0),
		vtable.Pass("Unlock", 4),
		vtable.M4("GetObjectInPath", (*CaptureBuffer).GetObjectInPath),
		vtable.M2("GetFXStatus", (*CaptureBuffer).GetFXStatus),
	))

	duplexLayout = vtable.Register(vtable.NewLayout("IDirectSoundFullDuplex",
		vtable.M2("QueryInterface", (*Duplex).QueryInterface),
		vtable.M0("AddRef", (*Duplex).AddRef),
		vtable.M0("Release", (*Duplex).Release),
		vtable.M8("Initialize", (*Duplex).Initialize),
	))
}

func (s *Shim) newCapture(real uintptr) uintptr {
	return s.wrap(captureLayout, lifetime.KindCapture, &Capture{shim: s}, real)
}

func (s *Shim) newCaptureBuffer(real uintptr, is8 bool) uintptr {
	return s.wrap(captureBufferLayout, lifetime.KindCaptureBuffer, &CaptureBuffer{shim: s, is8: is8}, real)
}

func (s *Shim) newDuplex(real uintptr) uintptr {
	return s.wrap(duplexLayout, lifetime.KindDuplex, &Duplex{shim: s}, real)
}

func (p *Capture) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, IIDIDirectSoundCapture); ok {
		return hr
	}
	return p.ForwardQuery(riid, ppv)
}

func (p *Capture) CreateCaptureBuffer(pDesc, ppBuffer, outer uintptr) com.HRESULT {
	if ppBuffer == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(ppBuffer, 0)

	desc, err := ReadCaptureBufferDesc(pDesc)
	if err != nil {
		Logger().Warn("capture descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}

	real := new(uintptr)
	hr := com.HRESULT(p.Real().Call(captureCreateCaptureBuffer, com.Addr(desc), com.Addr(real), outer))
	runtime.KeepAlive(desc)
	if hr.Failed() {
		return hr
	}
	buf := p.shim.newCaptureBuffer(*real, false)
	if buf == 0 {
		return DSErrOutOfMemory
	}
	com.WritePtr(ppBuffer, buf)
	return hr
}

func (p *CaptureBuffer) QueryInterface(riid, ppv uintptr) com.HRESULT {
	self := []*com.GUID{IIDIDirectSoundCaptureBuffer}
	if p.is8 {
		self = append(self, IIDIDirectSoundCaptureBuf8)
	}
	if hr, ok := p.QuerySelf(riid, ppv, self...); ok {
		return hr
	}
	if com.Matches(riid, IIDIDirectSoundCaptureBuf8) {
		return p.shim.queryWrap(&p.Object, riid, ppv, func(real uintptr) uintptr {
			return p.shim.newCaptureBuffer(real, true)
		})
	}
	return p.ForwardQuery(riid, ppv)
}

func (p *CaptureBuffer) Initialize(pCapture, pDesc uintptr) com.HRESULT {
	desc, err := ReadCaptureBufferDesc(pDesc)
	if err != nil {
		Logger().Warn("capture descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}
	hr := com.HRESULT(p.Real().Call(captureBufferInitialize, p.shim.reg.Unwrap(pCapture), com.Addr(desc)))
	runtime.KeepAlive(desc)
	return hr
}

func (p *CaptureBuffer) GetObjectInPath(guidObject, index, riid, ppObject uintptr) com.HRESULT {
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(captureBufferGetObjectInPath, guidObject, index, riid, ppObject))
}

func (p *CaptureBuffer) GetFXStatus(count, pResults uintptr) com.HRESULT {
	if !p.is8 {
		return DSErrUnsupported
	}
	return com.HRESULT(p.Real().Call(captureBufferGetFXStatus, count, pResults))
}

func (p *Duplex) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, IIDIDirectSoundFullDuplex); ok {
		return hr
	}
	return p.ForwardQuery(riid, ppv)
}

// Initialize sets up an object created through the class factory and
// returns proxied buffers.
func (p *Duplex) Initialize(captureGUID, renderGUID, captureDesc, renderDesc, hwnd, level,
	ppCaptureBuffer8, ppBuffer8 uintptr) com.HRESULT {
	if ppCaptureBuffer8 == 0 || ppBuffer8 == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(ppCaptureBuffer8, 0)
	com.WritePtr(ppBuffer8, 0)

	cdesc, err := ReadCaptureBufferDesc(captureDesc)
	if err != nil {
		return DSErrInvalidParam
	}
	rdesc, err := ReadBufferDesc(renderDesc)
	if err != nil {
		return DSErrInvalidParam
	}
	s := p.shim
	ApplyBufferOptions(rdesc, &s.opts)

	var cbuf, rbuf uintptr
	hr := com.HRESULT(p.Real().Call(duplexInitialize,
		captureGUID, renderGUID, com.Addr(cdesc), com.Addr(rdesc), hwnd,
		uintptr(CooperativeLevel(uint32(level), &s.opts)),
		com.Addr(&cbuf), com.Addr(&rbuf)))
	runtime.KeepAlive(cdesc)
	runtime.KeepAlive(rdesc)
	if hr.Failed() {
		return hr
	}

	pc := s.newCaptureBuffer(cbuf, true)
	pb := s.newBuffer(rbuf, false, true)
	if pc == 0 || pb == 0 {
		s.releaseAll(pc, pb)
		return DSErrOutOfMemory
	}
	com.WritePtr(ppCaptureBuffer8, pc)
	com.WritePtr(ppBuffer8, pb)
	return hr
}
