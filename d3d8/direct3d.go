package d3d8

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// Direct3D proxies IDirect3D8 over an IDirect3D9.
type Direct3D struct {
	lifetime.Object
	shim *Shim
}

var direct3DLayout *vtable.Layout

func init() {
	direct3DLayout = vtable.Register(vtable.NewLayout("IDirect3D8",
		vtable.M2("QueryInterface", (*Direct3D).QueryInterface),
		vtable.M0("AddRef", (*Direct3D).AddRef),
		vtable.M0("Release", (*Direct3D).Release),
		vtable.Forward("RegisterSoftwareDevice", 1, d3d9RegisterSoftwareDevice),
		vtable.ForwardValue("GetAdapterCount", 0, d3d9GetAdapterCount),
		vtable.M3("GetAdapterIdentifier", (*Direct3D).GetAdapterIdentifier),
		vtable.M1("GetAdapterModeCount", (*Direct3D).GetAdapterModeCount),
		vtable.M3("EnumAdapterModes", (*Direct3D).EnumAdapterModes),
		vtable.Forward("GetAdapterDisplayMode", 2, d3d9GetAdapterDisplayMode),
		vtable.Forward("CheckDeviceType", 5, d3d9CheckDeviceType),
		vtable.M6("CheckDeviceFormat", (*Direct3D).CheckDeviceFormat),
		vtable.M5("CheckDeviceMultiSampleType", (*Direct3D).CheckDeviceMultiSampleType),
		vtable.Forward("CheckDepthStencilMatch", 5, d3d9CheckDepthStencilMatch),
		vtable.M3("GetDeviceCaps", (*Direct3D).GetDeviceCaps),
		vtable.ForwardValue("GetAdapterMonitor", 1, d3d9GetAdapterMonitor),
		vtable.M6("CreateDevice", (*Direct3D).CreateDevice),
	).WithStatus(Status))
}

func (s *Shim) newDirect3D(real uintptr) uintptr {
	return s.wrap(direct3DLayout, lifetime.KindDirect3D, &Direct3D{shim: s}, real)
}

func (p *Direct3D) call(slot int, args ...uintptr) com.HRESULT {
	return Status(com.HRESULT(p.Real().Call(slot, args...)))
}

func (p *Direct3D) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, IIDIDirect3D8); ok {
		return hr
	}
	return p.ForwardQuery(riid, ppv)
}

func (p *Direct3D) GetAdapterIdentifier(adapter, flags, pIdentifier uintptr) com.HRESULT {
	if pIdentifier == 0 {
		return D3DErrInvalidCall
	}
	id := new(AdapterIdentifier9)
	hr := p.call(d3d9GetAdapterIdentifier, adapter, uintptr(IdentifierFlags(uint32(flags))), com.Addr(id))
	if hr.Failed() {
		return hr
	}
	com.Write(pIdentifier, ConvertAdapterIdentifier(id))
	return hr
}

// GetAdapterModeCount counts modes across every format a Direct3D 8
// caller can enumerate.
func (p *Direct3D) GetAdapterModeCount(adapter uintptr) uint32 {
	var n uint32
	for _, f := range DisplayFormats {
		n += uint32(p.Real().Call(d3d9GetAdapterModeCount, adapter, uintptr(f)))
	}
	return n
}

// EnumAdapterModes indexes the concatenation of the per-format mode lists.
func (p *Direct3D) EnumAdapterModes(adapter, mode, pMode uintptr) com.HRESULT {
	if pMode == 0 {
		return D3DErrInvalidCall
	}
	i := uint32(mode)
	for _, f := range DisplayFormats {
		n := uint32(p.Real().Call(d3d9GetAdapterModeCount, adapter, uintptr(f)))
		if i < n {
			return p.call(d3d9EnumAdapterModes, adapter, uintptr(f), uintptr(i), pMode)
		}
		i -= n
	}
	return D3DErrInvalidCall
}

func (p *Direct3D) CheckDeviceFormat(adapter, devType, adapterFormat, usage, rtype, checkFormat uintptr) com.HRESULT {
	if !Supported(Format(checkFormat)) {
		return D3DErrNotAvailable
	}
	return p.call(d3d9CheckDeviceFormat, adapter, devType, adapterFormat, usage, rtype, checkFormat)
}

func (p *Direct3D) CheckDeviceMultiSampleType(adapter, devType, surfaceFormat, windowed, msType uintptr) com.HRESULT {
	return p.call(d3d9CheckDeviceMultiSampleType, adapter, devType, surfaceFormat, windowed, msType, 0)
}

func (p *Direct3D) GetDeviceCaps(adapter, devType, pCaps uintptr) com.HRESULT {
	if pCaps == 0 {
		return D3DErrInvalidCall
	}
	caps := new(Caps9)
	hr := p.call(d3d9GetDeviceCaps, adapter, devType, com.Addr(caps))
	if hr.Failed() {
		return hr
	}
	com.Write(pCaps, ConvertCaps(caps))
	return hr
}

func (p *Direct3D) CreateDevice(adapter, devType, focusWindow, behavior, pParams, ppDevice uintptr) com.HRESULT {
	if pParams == 0 || ppDevice == 0 {
		return D3DErrInvalidCall
	}
	params := com.At[PresentParameters8](pParams)
	pp9 := ConvertPresentParameters(params)

	hr := p.shim.fetch(ppDevice, func(out uintptr) uintptr {
		return p.Real().Call(d3d9CreateDevice, adapter, devType, focusWindow, behavior, com.Addr(pp9), out)
	}, func(real uintptr) uintptr {
		return p.shim.newDevice(real, p)
	})
	runtime.KeepAlive(pp9)
	if hr.Failed() {
		Logger().Warn("CreateDevice failed",
			zap.Stringer("status", hr),
			zap.Uint32("width", params.BackBufferWidth),
			zap.Uint32("height", params.BackBufferHeight),
			zap.Uint32("format", uint32(params.BackBufferFormat)),
			zap.Bool("windowed", params.Windowed != 0))
		return hr
	}
	WritebackPresentParameters(params, pp9)
	return hr
}
