package d3d8

import (
	"sync"
	"testing"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
	"github.com/wippyai/dxshim/internal/comtest"
	"github.com/wippyai/dxshim/loader"
)

// fakeD3D9 is a real d3d9.dll made of comtest objects.
type fakeD3D9 struct {
	native *comtest.Native
	world  *comtest.World
	lib    *comtest.Library

	mu        sync.Mutex
	d3d       *comtest.Object
	devices   []*comtest.Object
	textures  []*comtest.Object
	surfaces  []*comtest.Object
	shaders   []*comtest.Object
	decls     []*comtest.Object
	blocks    []*comtest.Object
	lastPP    PresentParameters9
	lastCode  []uint32
	lastDecl  []VertexElement
	caps      Caps9
	depthBias uint32
}

func newFakeD3D9() *fakeD3D9 {
	f := &fakeD3D9{
		native: comtest.NewNative(),
		world:  comtest.NewWorld(),
	}
	f.caps.VertexShaderVersion = 0xFFFE0300
	f.caps.PixelShaderVersion = 0xFFFF0300
	f.caps.MaxVertexShaderConst = 256

	f.lib = &comtest.Library{Procs: map[string]uintptr{
		ProcDirect3DCreate9: f.native.NewCallback(func(sdk uintptr) uintptr {
			if sdk != SDKVersion {
				return 0
			}
			f.d3d = f.newD3D9()
			return f.d3d.Ptr()
		}),
	}}
	return f
}

func (f *fakeD3D9) newD3D9() *comtest.Object {
	o := f.world.New()
	o.On(d3d9CreateDevice, func(args []uintptr) uintptr {
		pp := com.At[PresentParameters9](args[4])
		if pp.BackBufferWidth == 0 {
			pp.BackBufferWidth, pp.BackBufferHeight = 640, 480
		}
		f.mu.Lock()
		f.lastPP = *pp
		f.mu.Unlock()
		com.WritePtr(args[5], f.newDevice().Ptr())
		return 0
	})
	o.On(d3d9GetDeviceCaps, func(args []uintptr) uintptr {
		com.Write(args[2], f.caps)
		return 0
	})
	o.On(d3d9GetAdapterModeCount, func(args []uintptr) uintptr {
		switch Format(args[1]) {
		case FmtX8R8G8B8:
			return 3
		case FmtR5G6B5:
			return 2
		}
		return 0
	})
	o.On(d3d9GetAdapterIdentifier, func(args []uintptr) uintptr {
		id := AdapterIdentifier9{VendorID: 0x8086, WHQLLevel: uint32(args[1])}
		com.Write(args[2], id)
		return 0
	})
	return o
}

func (f *fakeD3D9) newDevice() *comtest.Object {
	o := f.world.New()
	self := o.Ptr()
	o.On(dev9GetDirect3D, func(args []uintptr) uintptr {
		f.d3d.AddRef()
		com.WritePtr(args[0], f.d3d.Ptr())
		return 0
	})
	o.On(dev9GetDeviceCaps, func(args []uintptr) uintptr {
		com.Write(args[0], f.caps)
		return 0
	})
	o.On(dev9CreateTexture, func(args []uintptr) uintptr {
		com.WritePtr(args[6], f.newTexture(self, RTypeTexture).Ptr())
		return 0
	})
	o.On(dev9CreateCubeTexture, func(args []uintptr) uintptr {
		com.WritePtr(args[5], f.newTexture(self, RTypeCubeTexture).Ptr())
		return 0
	})
	o.On(dev9GetTexture, func(args []uintptr) uintptr {
		f.mu.Lock()
		tex := f.textures[len(f.textures)-1]
		f.mu.Unlock()
		tex.AddRef()
		com.WritePtr(args[1], tex.Ptr())
		return 0
	})
	o.On(dev9CreateIndexBuffer, func(args []uintptr) uintptr {
		com.WritePtr(args[4], f.world.New().Ptr())
		return 0
	})
	o.On(dev9CreateOffscreenPlainSurface, func(args []uintptr) uintptr {
		desc := SurfaceDesc9{Format: Format(args[2]), Pool: uint32(args[3]), Width: uint32(args[0]), Height: uint32(args[1])}
		com.WritePtr(args[4], f.newSurface(self, desc).Ptr())
		return 0
	})
	o.On(dev9CreateVertexDeclaration, func(args []uintptr) uintptr {
		var elems []VertexElement
		for p := args[0]; ; p += 8 {
			e := com.Read[VertexElement](p)
			elems = append(elems, e)
			if e == DeclEnd {
				break
			}
		}
		decl := f.world.New()
		f.mu.Lock()
		f.lastDecl = elems
		f.decls = append(f.decls, decl)
		f.mu.Unlock()
		com.WritePtr(args[1], decl.Ptr())
		return 0
	})
	o.On(dev9CreateVertexShader, func(args []uintptr) uintptr {
		code, err := ReadFunction(args[0])
		if err != nil {
			return uintptr(D3DErrInvalidCall)
		}
		vs := f.world.New()
		f.mu.Lock()
		f.lastCode = code
		f.shaders = append(f.shaders, vs)
		f.mu.Unlock()
		com.WritePtr(args[1], vs.Ptr())
		return 0
	})
	o.On(dev9CreatePixelShader, func(args []uintptr) uintptr {
		ps := f.world.New()
		f.mu.Lock()
		f.shaders = append(f.shaders, ps)
		f.mu.Unlock()
		com.WritePtr(args[1], ps.Ptr())
		return 0
	})
	o.On(dev9CreateStateBlock, func(args []uintptr) uintptr {
		b := f.world.New()
		f.mu.Lock()
		f.blocks = append(f.blocks, b)
		f.mu.Unlock()
		com.WritePtr(args[1], b.Ptr())
		return 0
	})
	o.On(dev9SetRenderState, func(args []uintptr) uintptr {
		if args[0] == RSDepthBias {
			f.mu.Lock()
			f.depthBias = uint32(args[1])
			f.mu.Unlock()
		}
		return 0
	})
	o.On(dev9GetRenderState, func(args []uintptr) uintptr {
		if args[0] == RSDepthBias {
			f.mu.Lock()
			com.Write(args[1], f.depthBias)
			f.mu.Unlock()
		}
		return 0
	})
	o.On(dev9GetSoftwareVertexProcessing, func(args []uintptr) uintptr { return 1 })
	o.On(dev9StretchRect, func(args []uintptr) uintptr { return uintptr(D3DErrWasStillDrawing) })

	f.mu.Lock()
	f.devices = append(f.devices, o)
	f.mu.Unlock()
	return o
}

// withDevice answers GetDevice on a child object the way Direct3D does,
// with a new reference to the device.
func (f *fakeD3D9) withDevice(o *comtest.Object, device uintptr) {
	o.On(res9GetDevice, func(args []uintptr) uintptr {
		if d, ok := f.world.Get(device); ok {
			d.AddRef()
		}
		com.WritePtr(args[0], device)
		return 0
	})
}

func (f *fakeD3D9) newTexture(device uintptr, rtype uintptr) *comtest.Object {
	o := f.world.New()
	f.withDevice(o, device)
	o.On(res9GetType, func(args []uintptr) uintptr { return rtype })
	o.On(tex9GetLevelDesc, func(args []uintptr) uintptr {
		desc := SurfaceDesc9{Format: FmtA8R8G8B8, Pool: PoolManaged, Width: 64 >> args[0], Height: 32 >> args[0]}
		com.Write(args[len(args)-1], desc)
		return 0
	})
	o.On(tex9GetLevel, func(args []uintptr) uintptr {
		desc := SurfaceDesc9{Format: FmtA8R8G8B8, Pool: PoolManaged, Width: 64, Height: 32}
		s := f.newSurface(device, desc)
		s.On(surf9GetContainer, func(a []uintptr) uintptr {
			if !com.Matches(a[0], IIDIDirect3DTexture9) {
				return uintptr(com.ENoInterface)
			}
			o.AddRef()
			com.WritePtr(a[1], o.Ptr())
			return 0
		})
		com.WritePtr(args[len(args)-1], s.Ptr())
		return 0
	})
	f.mu.Lock()
	f.textures = append(f.textures, o)
	f.mu.Unlock()
	return o
}

// newSurface creates a surface backed by Go memory with a 4 byte pixel.
func (f *fakeD3D9) newSurface(device uintptr, desc SurfaceDesc9) *comtest.Object {
	o := f.world.New()
	f.withDevice(o, device)
	pitch := int32(desc.Width * 4)
	pixels := make([]byte, int(desc.Width*desc.Height*4))
	for i := range pixels {
		pixels[i] = byte(i)
	}
	o.On(surf9GetDesc, func(args []uintptr) uintptr {
		com.Write(args[0], desc)
		return 0
	})
	o.On(surf9LockRect, func(args []uintptr) uintptr {
		var r Rect
		if args[1] != 0 {
			r = com.Read[Rect](args[1])
		}
		bits := com.Addr(&pixels[0]) + uintptr(r.Top*pitch+r.Left*4)
		com.Write(args[0], LockedRect{Pitch: pitch, Bits: bits})
		return 0
	})
	f.mu.Lock()
	f.surfaces = append(f.surfaces, o)
	f.mu.Unlock()
	return o
}

// pixels returns the bytes behind a fake surface by locking it.
func (f *fakeD3D9) pixels(t *testing.T, o *comtest.Object) []byte {
	t.Helper()
	var desc SurfaceDesc9
	o.Call(surf9GetDesc, com.Addr(&desc))
	var lr LockedRect
	o.Call(surf9LockRect, com.Addr(&lr), 0, 0)
	return com.Slice[byte](lr.Bits, int(desc.Width*desc.Height*4))
}

func (f *fakeD3D9) shim(t *testing.T, cfg *config.Config) *Shim {
	t.Helper()
	target, err := Target(&cfg.D3D8)
	if err != nil {
		t.Fatal(err)
	}
	surface, err := loader.Resolve(f.lib, target)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, surface, WithNative(f.native), WithBinder(f.world.Bind))
}

func (f *fakeD3D9) direct3D(t *testing.T, s *Shim) uintptr {
	t.Helper()
	d3d := s.Direct3DCreate8(SDKVersion)
	if d3d == 0 {
		t.Fatal("Direct3DCreate8 returned null")
	}
	return d3d
}

// call invokes a named method of a Direct3D 8 proxy through its vtable.
func (f *fakeD3D9) call(t *testing.T, p uintptr, l interface{ Index(string) int }, method string, args ...uintptr) com.HRESULT {
	t.Helper()
	slot := l.Index(method)
	if slot < 0 {
		t.Fatalf("no method %s", method)
	}
	return com.HRESULT(f.native.CallSlot(p, slot, args...))
}

func (f *fakeD3D9) createDevice(t *testing.T, s *Shim, d3d uintptr, pp *PresentParameters8) uintptr {
	t.Helper()
	var dev uintptr
	hr := f.call(t, d3d, direct3DLayout, "CreateDevice", 0, 1, 0, 0x40, com.Addr(pp), com.Addr(&dev))
	if hr != D3DOK {
		t.Fatalf("CreateDevice = %v", hr)
	}
	return dev
}

func TestDirect3DCreate8_NoLibrary(t *testing.T) {
	f := newFakeD3D9()
	s := New(config.Default(), nil, WithNative(f.native), WithBinder(f.world.Bind))
	if p := s.Direct3DCreate8(SDKVersion); p != 0 {
		t.Fatalf("Direct3DCreate8 = %#x, want 0", p)
	}
	if s.Available() || s.Registry().Live() != 0 {
		t.Fatal("proxy allocated without a real library")
	}
}

func TestDirect3DCreate8_RealFailure(t *testing.T) {
	f := newFakeD3D9()
	f.lib.Procs[ProcDirect3DCreate9] = f.native.NewCallback(func(sdk uintptr) uintptr { return 0 })
	s := f.shim(t, config.Default())
	if p := s.Direct3DCreate8(SDKVersion); p != 0 {
		t.Fatalf("Direct3DCreate8 = %#x", p)
	}
	if s.Registry().Live() != 0 {
		t.Fatal("proxy allocated for a failed create")
	}
}

func TestDirect3DCreate8_Lifetime(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())

	d3d := f.direct3D(t, s)
	if d3d == f.d3d.Ptr() {
		t.Fatal("real object handed to caller")
	}
	if got := f.native.CallSlot(d3d, com.SlotAddRef); got != 2 {
		t.Fatalf("AddRef = %d", got)
	}
	f.native.CallSlot(d3d, com.SlotRelease)
	if got := f.native.CallSlot(d3d, com.SlotRelease); got != 0 {
		t.Fatalf("final Release = %d", got)
	}
	if f.d3d.Releases() != 1 || f.d3d.Refs() != 0 {
		t.Fatalf("real releases=%d refs=%d", f.d3d.Releases(), f.d3d.Refs())
	}
	if s.Registry().Live() != 0 {
		t.Fatal("proxy still registered")
	}
}

func TestQueryInterface(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())
	d3d := f.direct3D(t, s)

	var p uintptr
	hr := f.call(t, d3d, direct3DLayout, "QueryInterface", com.Addr(IIDIDirect3D8), com.Addr(&p))
	if hr != com.OK || p != d3d {
		t.Fatalf("QI(IDirect3D8) = %v, %#x", hr, p)
	}
	f.native.CallSlot(p, com.SlotRelease)

	hr = f.call(t, d3d, direct3DLayout, "QueryInterface", com.Addr(com.IIDIUnknown), com.Addr(&p))
	if hr != com.OK || p != d3d {
		t.Fatalf("QI(IUnknown) = %v, %#x", hr, p)
	}
	f.native.CallSlot(p, com.SlotRelease)
}

func TestAdapterModes(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())
	d3d := f.direct3D(t, s)

	if n := f.call(t, d3d, direct3DLayout, "GetAdapterModeCount", 0); n != 5 {
		t.Fatalf("GetAdapterModeCount = %d, want 5", n)
	}

	var mode DisplayMode
	if hr := f.call(t, d3d, direct3DLayout, "EnumAdapterModes", 0, 3, com.Addr(&mode)); hr != D3DOK {
		t.Fatalf("EnumAdapterModes = %v", hr)
	}
	c, _ := f.d3d.LastCall(d3d9EnumAdapterModes)
	if Format(c.Args[1]) != FmtR5G6B5 || c.Args[2] != 0 {
		t.Fatalf("mode 3 resolved to format %d index %d", c.Args[1], c.Args[2])
	}
	if hr := f.call(t, d3d, direct3DLayout, "EnumAdapterModes", 0, 5, com.Addr(&mode)); hr != D3DErrInvalidCall {
		t.Fatalf("out of range mode = %v", hr)
	}
}

func TestAdapterIdentifier(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())
	d3d := f.direct3D(t, s)

	var id AdapterIdentifier8
	if hr := f.call(t, d3d, direct3DLayout, "GetAdapterIdentifier", 0, 0, com.Addr(&id)); hr != D3DOK {
		t.Fatalf("GetAdapterIdentifier = %v", hr)
	}
	if id.VendorID != 0x8086 || id.WHQLLevel != EnumWHQLLevel {
		t.Fatalf("identifier = vendor %#x flags %#x", id.VendorID, id.WHQLLevel)
	}
	f.call(t, d3d, direct3DLayout, "GetAdapterIdentifier", 0, EnumNoWHQLLevel, com.Addr(&id))
	if id.WHQLLevel != 0 {
		t.Fatal("NO_WHQL_LEVEL not translated")
	}
}

func TestCheckDeviceFormat(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())
	d3d := f.direct3D(t, s)

	if hr := f.call(t, d3d, direct3DLayout, "CheckDeviceFormat", 0, 1, uintptr(FmtX8R8G8B8), 0, RTypeTexture, uintptr(FmtW11V11U10)); hr != D3DErrNotAvailable {
		t.Fatalf("W11V11U10 = %v", hr)
	}
	if len(f.d3d.Calls(d3d9CheckDeviceFormat)) != 0 {
		t.Fatal("unsupported format reached the real object")
	}
	if hr := f.call(t, d3d, direct3DLayout, "CheckDeviceFormat", 0, 1, uintptr(FmtX8R8G8B8), 0, RTypeTexture, uintptr(FmtDXT1)); hr != D3DOK {
		t.Fatalf("DXT1 = %v", hr)
	}

	f.call(t, d3d, direct3DLayout, "CheckDeviceMultiSampleType", 0, 1, uintptr(FmtX8R8G8B8), 1, 2)
	c, ok := f.d3d.LastCall(d3d9CheckDeviceMultiSampleType)
	if !ok || len(c.Args) != 6 || c.Args[5] != 0 {
		t.Fatalf("CheckDeviceMultiSampleType call = %+v", c)
	}
}

func TestGetDeviceCaps(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())
	d3d := f.direct3D(t, s)

	var caps Caps8
	if hr := f.call(t, d3d, direct3DLayout, "GetDeviceCaps", 0, 1, com.Addr(&caps)); hr != D3DOK {
		t.Fatalf("GetDeviceCaps = %v", hr)
	}
	if caps.VertexShaderVersion != VSVersion11 || caps.PixelShaderVersion != PSVersion14 {
		t.Fatalf("caps versions = %#x, %#x", caps.VertexShaderVersion, caps.PixelShaderVersion)
	}
	if hr := f.call(t, d3d, direct3DLayout, "GetDeviceCaps", 0, 1, 0); hr != D3DErrInvalidCall {
		t.Fatalf("null caps = %v", hr)
	}
}

func TestValidateShaders(t *testing.T) {
	f := newFakeD3D9()
	s := f.shim(t, config.Default())

	vs := []uint32{VSVersion11, opEnd}
	ps := []uint32{PSVersion14, opEnd}
	caps := Caps8{VertexShaderVersion: VSVersion10, PixelShaderVersion: PSVersion14}

	errs := uintptr(0xDEAD)
	if hr := s.ValidateVertexShader(com.Addr(&vs[0]), 0, 0, 1, com.Addr(&errs)); hr != com.OK {
		t.Fatalf("vs_1_1 = %v", hr)
	}
	if errs != 0 {
		t.Fatal("error buffer not cleared")
	}
	if hr := s.ValidateVertexShader(com.Addr(&vs[0]), 0, com.Addr(&caps), 0, 0); hr != com.EFail {
		t.Fatalf("vs_1_1 on vs_1_0 hardware = %v", hr)
	}
	if hr := s.ValidateVertexShader(com.Addr(&ps[0]), 0, 0, 0, 0); hr != com.EFail {
		t.Fatalf("pixel shader as vertex shader = %v", hr)
	}
	if hr := s.ValidatePixelShader(com.Addr(&ps[0]), com.Addr(&caps), 0, 0); hr != com.OK {
		t.Fatalf("ps_1_4 = %v", hr)
	}
	if hr := s.ValidatePixelShader(0, 0, 0, 0); hr != com.EFail {
		t.Fatalf("null pixel shader = %v", hr)
	}
	s.DebugSetMute()
}

func TestTarget(t *testing.T) {
	cfg := config.Default()
	target, err := Target(&cfg.D3D8)
	if err != nil {
		t.Fatal(err)
	}
	if target.Mode != loader.ModeSystem || target.Prefix != "" || target.Library != "d3d9.dll" {
		t.Fatalf("default target = %+v", target)
	}

	cfg.D3D8.Loader = "self"
	target, err = Target(&cfg.D3D8)
	if err != nil {
		t.Fatal(err)
	}
	if target.Prefix != cfg.D3D8.SymbolPrefix {
		t.Fatalf("self target prefix = %q", target.Prefix)
	}

	cfg.D3D8.Loader = "bogus"
	if _, err := Target(&cfg.D3D8); err == nil {
		t.Fatal("unknown loader mode accepted")
	}
}
