package d3d8

import (
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

// Exported entry points of d3d8.dll, and the Direct3D 9 export they use.
const (
	ProcValidatePixelShader  = "ValidatePixelShader"
	ProcValidateVertexShader = "ValidateVertexShader"
	ProcDebugSetMute         = "DebugSetMute"
	ProcDirect3DCreate8      = "Direct3DCreate8"

	ProcDirect3DCreate9 = "Direct3DCreate9"
)

// Target describes the real Direct3D 9 library for cfg.
func Target(cfg *config.D3D8) (loader.Target, error) {
	mode, err := loader.ParseMode(cfg.Loader)
	if err != nil {
		return loader.Target{}, err
	}
	t := loader.Target{
		Mode:     mode,
		Library:  cfg.Library,
		Required: []string{ProcDirect3DCreate9},
	}
	if mode == loader.ModeSelf {
		t.Prefix = cfg.SymbolPrefix
	}
	return t, nil
}

// Shim is the process-scoped Direct3D 8 interception state.
type Shim struct {
	opts    config.D3D8
	surface *loader.Surface
	native  com.Native
	bind    com.Binder
	reg     *vtable.Registry
	alarm   *diag.Alarm
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
// makes Direct3DCreate8 fail.
func New(cfg *config.Config, surface *loader.Surface, opts ...Option) *Shim {
	s := &Shim{
		opts:    cfg.D3D8,
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
	return s
}

// Open loads the real library named by cfg and creates the shim.
func Open(cfg *config.Config, opts ...Option) *Shim {
	var surface *loader.Surface
	target, err := Target(&cfg.D3D8)
	if err == nil {
		surface, err = loader.Load(target)
	}
	s := New(cfg, surface, opts...)
	if err != nil {
		Logger().Error("real direct3d 9 unavailable", zap.Error(err))
		s.alarm.Failure(cfg.D3D8.Library)
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

func (s *Shim) wrap(l *vtable.Layout, kind lifetime.Kind, p lifetime.Proxy, real uintptr) uintptr {
	obj := s.bind(real)
	if obj == nil {
		return 0
	}
	return lifetime.Wrap(s.reg, l, kind, p, obj)
}

// fetch runs a real call that returns an interface through an out
// pointer and hands the caller a proxy made by wrap. A successful call
// that yields no object leaves *pp null.
func (s *Shim) fetch(pp uintptr, call func(out uintptr) uintptr, wrap func(real uintptr) uintptr) com.HRESULT {
	if pp == 0 {
		return D3DErrInvalidCall
	}
	com.WritePtr(pp, 0)

	real := new(uintptr)
	hr := Status(com.HRESULT(call(com.Addr(real))))
	if hr.Failed() || *real == 0 {
		return hr
	}
	p := wrap(*real)
	if p == 0 {
		return com.EOutOfMemory
	}
	com.WritePtr(pp, p)
	return hr
}

// Direct3DCreate8 creates a Direct3D 9 object and returns an IDirect3D8
// proxy for it, or 0.
func (s *Shim) Direct3DCreate8(sdkVersion uint32) uintptr {
	Logger().Info("Direct3DCreate8", zap.Uint32("sdk_version", sdkVersion))

	fn := s.surface.Proc(ProcDirect3DCreate9)
	if fn == 0 {
		Logger().Error("entry point unavailable",
			zap.Error(errors.LoadFailure(s.opts.Library, []string{ProcDirect3DCreate9}, nil)))
		return 0
	}
	real := s.native.Invoke(fn, SDKVersion)
	if real == 0 {
		Logger().Error("real create failed",
			zap.Error(errors.RealAPIFailure("d3d9", ProcDirect3DCreate9, 0)))
		return 0
	}
	return s.newDirect3D(real)
}

// ValidateVertexShader checks the version token of a vertex shader and,
// when caps are given, that the device supports it. Error strings are
// never produced.
func (s *Shim) ValidateVertexShader(pShader, pDecl, pCaps, returnErrors, ppErrors uintptr) com.HRESULT {
	com.WritePtr(ppErrors, 0)
	if pShader == 0 {
		return com.EFail
	}
	v := com.Read[uint32](pShader)
	if !ValidVertexShaderVersion(v) {
		return com.EFail
	}
	if pCaps != 0 && v > com.Read[Caps8](pCaps).VertexShaderVersion {
		return com.EFail
	}
	return com.OK
}

// ValidatePixelShader is ValidateVertexShader for pixel shaders.
func (s *Shim) ValidatePixelShader(pShader, pCaps, returnErrors, ppErrors uintptr) com.HRESULT {
	com.WritePtr(ppErrors, 0)
	if pShader == 0 {
		return com.EFail
	}
	v := com.Read[uint32](pShader)
	if !ValidPixelShaderVersion(v) {
		return com.EFail
	}
	if pCaps != 0 && v > com.Read[Caps8](pCaps).PixelShaderVersion {
		return com.EFail
	}
	return com.OK
}

// DebugSetMute does nothing; Direct3D 9 has no debug mute.
func (s *Shim) DebugSetMute() {}
