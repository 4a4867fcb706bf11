package dsound

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
	"github.com/wippyai/dxshim/diag"
	"github.com/wippyai/dxshim/errors"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/loader"
	"github.com/wippyai/dxshim/resource"
	"github.com/wippyai/dxshim/vtable"
)

// Exported entry points of dsound.dll.
const (
	ProcDirectSoundCreate            = "DirectSoundCreate"
	ProcDirectSoundEnumerateA        = "DirectSoundEnumerateA"
	ProcDirectSoundEnumerateW        = "DirectSoundEnumerateW"
	ProcDllCanUnloadNow              = "DllCanUnloadNow"
	ProcDllGetClassObject            = "DllGetClassObject"
	ProcDirectSoundCaptureCreate     = "DirectSoundCaptureCreate"
	ProcDirectSoundCaptureEnumerateA = "DirectSoundCaptureEnumerateA"
	ProcDirectSoundCaptureEnumerateW = "DirectSoundCaptureEnumerateW"
	ProcGetDeviceID                  = "GetDeviceID"
	ProcDirectSoundFullDuplexCreate  = "DirectSoundFullDuplexCreate"
	ProcDirectSoundCreate8           = "DirectSoundCreate8"
	ProcDirectSoundCaptureCreate8    = "DirectSoundCaptureCreate8"
)

// Target describes the real dsound library for cfg.
func Target(cfg *config.DSound) (loader.Target, error) {
	mode, err := loader.ParseMode(cfg.Loader)
	if err != nil {
		return loader.Target{}, err
	}
	t := loader.Target{
		Mode:     mode,
		Library:  cfg.Library,
		Required: []string{ProcDirectSoundCreate, ProcDirectSoundCreate8},
		Optional: []string{
			ProcDirectSoundEnumerateA, ProcDirectSoundEnumerateW,
			ProcDllCanUnloadNow, ProcDllGetClassObject,
			ProcDirectSoundCaptureCreate, ProcDirectSoundCaptureCreate8,
			ProcDirectSoundCaptureEnumerateA, ProcDirectSoundCaptureEnumerateW,
			ProcGetDeviceID, ProcDirectSoundFullDuplexCreate,
		},
	}
	if mode == loader.ModeSelf {
		t.Prefix = cfg.SymbolPrefix
	}
	return t, nil
}

// Shim is the process-scoped DirectSound interception state: the real
// library, the options snapshot and the registry of live proxies.
type Shim struct {
	opts    config.DSound
	debug   config.Debug
	surface *loader.Surface
	native  com.Native
	bind    com.Binder
	reg     *vtable.Registry
	alarm   *diag.Alarm

	enums    *resource.Typed[*enumContext]
	enumOnce sync.Once
	enumCB   uintptr
}

// Option configures a Shim.
type Option func(*Shim)

// WithNative replaces the native call layer.
func WithNative(n com.Native) Option {
	return func(s *Shim) { s.native = n }
}

// WithBinder replaces how real interface pointers become objects.
func WithBinder(b com.Binder) Option {
	return func(s *Shim) { s.bind = b }
}

// New creates a shim over an already resolved surface. A nil surface
// makes every entry point report the driver as unavailable.
func New(cfg *config.Config, surface *loader.Surface, opts ...Option) *Shim {
	s := &Shim{
		opts:    cfg.DSound,
		debug:   cfg.Debug,
		surface: surface,
		native:  com.System,
		bind:    com.Bind,
		alarm:   diag.NewAlarm(cfg.Debug.Beep),
	}
	for _, o := range opts {
		o(s)
	}
	s.reg = vtable.NewRegistry(s.native)
	s.reg.SetTrace(cfg.Logging.TraceCalls)
	s.reg.Subscribe(proxyObserver{})
	s.enums = resource.NewTyped[*enumContext](resource.NewTable(), enumTypeID)
	return s
}

// Open loads the real library named by cfg and creates the shim. Load
// failures are logged and leave the shim running without a surface.
func Open(cfg *config.Config, opts ...Option) *Shim {
	var surface *loader.Surface
	target, err := Target(&cfg.DSound)
	if err == nil {
		surface, err = loader.Load(target)
	}
	s := New(cfg, surface, opts...)
	if err != nil {
		Logger().Error("real dsound unavailable", zap.Error(err))
		s.alarm.Failure(cfg.DSound.Library)
		return s
	}
	if cfg.Debug.TraceEnumeration {
		s.TraceDevices()
	}
	return s
}

// Registry exposes the live proxy registry.
func (s *Shim) Registry() *vtable.Registry {
	return s.reg
}

// Available reports whether the real library was loaded.
func (s *Shim) Available() bool {
	return s.surface != nil
}

// Close stops handing out proxies and unloads the real library.
func (s *Shim) Close() error {
	s.reg.Close()
	return s.surface.Close()
}

type proxyObserver struct{}

func (proxyObserver) OnResourceEvent(e resource.Event) {
	Logger().Debug("proxy "+e.Type.String(),
		zap.Stringer("kind", lifetime.Kind(e.TypeID)),
		zap.Uint32("handle", uint32(e.Handle)))
}

func (s *Shim) call(proc string, args ...uintptr) (com.HRESULT, bool) {
	fn := s.surface.Proc(proc)
	if fn == 0 {
		Logger().Warn("entry point unavailable",
			zap.Error(errors.LoadFailure(s.opts.Library, []string{proc}, nil)))
		return DSErrNoDriver, false
	}
	return com.HRESULT(s.native.Invoke(fn, args...)), true
}

func (s *Shim) wrap(l *vtable.Layout, kind lifetime.Kind, p lifetime.Proxy, real uintptr) uintptr {
	obj := s.bind(real)
	if obj == nil {
		return 0
	}
	return lifetime.Wrap(s.reg, l, kind, p, obj)
}

// create calls a creation entry point whose out pointer is args[out]
// and hands the caller a proxy made by wrap instead of the real object.
func (s *Shim) create(proc string, out int, args []uintptr, wrap func(real uintptr) uintptr) com.HRESULT {
	pp := args[out]
	if pp == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(pp, 0)

	real := new(uintptr)
	args[out] = com.Addr(real)
	hr, ok := s.call(proc, args...)
	if !ok || hr.Failed() {
		if ok {
			Logger().Debug("real create failed",
				zap.Error(errors.RealAPIFailure("dsound", proc, uint32(hr))))
		}
		return hr
	}

	p := wrap(*real)
	if p == 0 {
		return DSErrOutOfMemory
	}
	com.WritePtr(pp, p)
	return hr
}

// DirectSoundCreate creates a device and returns an IDirectSound proxy.
func (s *Shim) DirectSoundCreate(guid, ppDS, outer uintptr) com.HRESULT {
	return s.create(ProcDirectSoundCreate, 1, []uintptr{guid, ppDS, outer}, func(real uintptr) uintptr {
		return s.newSound(real, false)
	})
}

// DirectSoundCreate8 creates a device and returns an IDirectSound8 proxy.
func (s *Shim) DirectSoundCreate8(guid, ppDS8, outer uintptr) com.HRESULT {
	return s.create(ProcDirectSoundCreate8, 1, []uintptr{guid, ppDS8, outer}, func(real uintptr) uintptr {
		return s.newSound(real, true)
	})
}

// DirectSoundCaptureCreate creates a capture device proxy.
func (s *Shim) DirectSoundCaptureCreate(guid, ppDSC, outer uintptr) com.HRESULT {
	return s.create(ProcDirectSoundCaptureCreate, 1, []uintptr{guid, ppDSC, outer}, s.newCapture)
}

// DirectSoundCaptureCreate8 creates a capture device proxy. IDirectSoundCapture8
// is the same interface as IDirectSoundCapture.
func (s *Shim) DirectSoundCaptureCreate8(guid, ppDSC8, outer uintptr) com.HRESULT {
	return s.create(ProcDirectSoundCaptureCreate8, 1, []uintptr{guid, ppDSC8, outer}, s.newCapture)
}

// DirectSoundFullDuplexCreate creates a full-duplex object together with
// one capture and one render buffer, all three proxied.
func (s *Shim) DirectSoundFullDuplexCreate(captureGUID, renderGUID, captureDesc, renderDesc, hwnd, level,
	ppDSFD, ppCaptureBuffer8, ppBuffer8, outer uintptr) com.HRESULT {
	if ppDSFD == 0 || ppCaptureBuffer8 == 0 || ppBuffer8 == 0 {
		return DSErrInvalidParam
	}
	com.WritePtr(ppDSFD, 0)
	com.WritePtr(ppCaptureBuffer8, 0)
	com.WritePtr(ppBuffer8, 0)

	cdesc, err := ReadCaptureBufferDesc(captureDesc)
	if err != nil {
		Logger().Warn("capture descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}
	rdesc, err := ReadBufferDesc(renderDesc)
	if err != nil {
		Logger().Warn("buffer descriptor rejected", zap.Error(err))
		return DSErrInvalidParam
	}
	ApplyBufferOptions(rdesc, &s.opts)

	var duplex, cbuf, rbuf uintptr
	hr, ok := s.call(ProcDirectSoundFullDuplexCreate,
		captureGUID, renderGUID, com.Addr(cdesc), com.Addr(rdesc), hwnd,
		uintptr(CooperativeLevel(uint32(level), &s.opts)),
		com.Addr(&duplex), com.Addr(&cbuf), com.Addr(&rbuf), outer)
	if !ok || hr.Failed() {
		return hr
	}

	pd := s.newDuplex(duplex)
	pc := s.newCaptureBuffer(cbuf, true)
	pb := s.newBuffer(rbuf, false, true)
	if pd == 0 || pc == 0 || pb == 0 {
		s.releaseAll(pd, pc, pb)
		return DSErrOutOfMemory
	}
	com.WritePtr(ppDSFD, pd)
	com.WritePtr(ppCaptureBuffer8, pc)
	com.WritePtr(ppBuffer8, pb)
	return hr
}

func (s *Shim) releaseAll(ptrs ...uintptr) {
	for _, p := range ptrs {
		if v, ok := s.reg.Lookup(p); ok {
			if r, ok := v.(interface{ Release() uint32 }); ok {
				r.Release()
			}
		}
	}
}

// GetDeviceID forwards to the real library.
func (s *Shim) GetDeviceID(src, dest uintptr) com.HRESULT {
	hr, _ := s.call(ProcGetDeviceID, src, dest)
	return hr
}

// DllCanUnloadNow answers S_FALSE while proxies are alive, otherwise
// forwards to the real library.
func (s *Shim) DllCanUnloadNow() com.HRESULT {
	if s.reg.Live() > 0 {
		return com.False
	}
	hr, ok := s.call(ProcDllCanUnloadNow)
	if !ok {
		return com.OK
	}
	return hr
}

// DllGetClassObject returns a proxying class factory for the DirectSound
// classes and forwards any other request unmodified.
func (s *Shim) DllGetClassObject(rclsid, riid, ppv uintptr) com.HRESULT {
	if ppv == 0 {
		return com.EPointer
	}
	com.WritePtr(ppv, 0)
	if s.surface.Proc(ProcDllGetClassObject) == 0 {
		return com.ClassEClassNotAvailable
	}

	is8 := com.Matches(rclsid, CLSIDDirectSound8)
	if !is8 && !com.Matches(rclsid, CLSIDDirectSound) {
		Logger().Debug("forwarding class request",
			zap.Error(errors.UnknownRequest("DllGetClassObject", "CLSID", com.GUIDString(rclsid))))
		hr, _ := s.call(ProcDllGetClassObject, rclsid, riid, ppv)
		return hr
	}
	if !com.Matches(riid, com.IIDIClassFactory) {
		Logger().Debug("forwarding class interface request",
			zap.Error(errors.UnknownRequest("DllGetClassObject", "IID", com.GUIDString(riid))))
		hr, _ := s.call(ProcDllGetClassObject, rclsid, riid, ppv)
		return hr
	}

	return s.create(ProcDllGetClassObject, 2, []uintptr{rclsid, riid, ppv}, func(real uintptr) uintptr {
		return s.newFactory(real, is8)
	})
}
