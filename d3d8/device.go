package d3d8

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/resource"
	"github.com/wippyai/dxshim/vtable"
)

// Device proxies IDirect3DDevice8 over an IDirect3DDevice9.
//
// Besides translating calls it keeps the state Direct3D 9 no longer
// tracks for the caller: the base vertex index given to SetIndices, the
// current shader handles, and the handle tables behind vertex shaders,
// pixel shaders and state blocks.
type Device struct {
	lifetime.Object
	shim *Shim
	d3d  *Direct3D

	handles         *handles
	baseVertexIndex atomic.Uint32
	currentVS       atomic.Uint32
	currentPS       atomic.Uint32
}

var deviceLayout *vtable.Layout

func init() {
	deviceLayout = vtable.Register(vtable.NewLayout("IDirect3DDevice8",
		vtable.M2("QueryInterface", (*Device).QueryInterface),
		vtable.M0("AddRef", (*Device).AddRef),
		vtable.M0("Release", (*Device).Release),
		vtable.Forward("TestCooperativeLevel", 0, dev9TestCooperativeLevel),
		vtable.ForwardValue("GetAvailableTextureMem", 0, dev9GetAvailableTextureMem),
		vtable.M1("ResourceManagerDiscardBytes", (*Device).ResourceManagerDiscardBytes),
		vtable.M1("GetDirect3D", (*Device).GetDirect3D),
		vtable.M1("GetDeviceCaps", (*Device).GetDeviceCaps),
		vtable.M1("GetDisplayMode", (*Device).GetDisplayMode),
		vtable.Forward("GetCreationParameters", 1, dev9GetCreationParameters),
		vtable.M3("SetCursorProperties", (*Device).SetCursorProperties),
		vtable.ForwardValue("SetCursorPosition", 3, dev9SetCursorPosition),
		vtable.ForwardValue("ShowCursor", 1, dev9ShowCursor),
		vtable.M2("CreateAdditionalSwapChain", (*Device).CreateAdditionalSwapChain),
		vtable.M1("Reset", (*Device).Reset),
		vtable.Forward("Present", 4, dev9Present),
		vtable.M3("GetBackBuffer", (*Device).GetBackBuffer),
		vtable.M1("GetRasterStatus", (*Device).GetRasterStatus),
		vtable.M2("SetGammaRamp", (*Device).SetGammaRamp),
		vtable.M1("GetGammaRamp", (*Device).GetGammaRamp),
		vtable.M7("CreateTexture", (*Device).CreateTexture),
		vtable.M8("CreateVolumeTexture", (*Device).CreateVolumeTexture),
		vtable.M6("CreateCubeTexture", (*Device).CreateCubeTexture),
		vtable.M5("CreateVertexBuffer", (*Device).CreateVertexBuffer),
		vtable.M5("CreateIndexBuffer", (*Device).CreateIndexBuffer),
		vtable.M6("CreateRenderTarget", (*Device).CreateRenderTarget),
		vtable.M5("CreateDepthStencilSurface", (*Device).CreateDepthStencilSurface),
		vtable.M4("CreateImageSurface", (*Device).CreateImageSurface),
		vtable.M5("CopyRects", (*Device).CopyRects),
		vtable.M2("UpdateTexture", (*Device).UpdateTexture),
		vtable.M1("GetFrontBuffer", (*Device).GetFrontBuffer),
		vtable.M2("SetRenderTarget", (*Device).SetRenderTarget),
		vtable.M1("GetRenderTarget", (*Device).GetRenderTarget),
		vtable.M1("GetDepthStencilSurface", (*Device).GetDepthStencilSurface),
		vtable.Forward("BeginScene", 0, dev9BeginScene),
		vtable.Forward("EndScene", 0, dev9EndScene),
		vtable.Forward("Clear", 6, dev9Clear),
		vtable.Forward("SetTransform", 2, dev9SetTransform),
		vtable.Forward("GetTransform", 2, dev9GetTransform),
		vtable.Forward("MultiplyTransform", 2, dev9MultiplyTransform),
		vtable.Forward("SetViewport", 1, dev9SetViewport),
		vtable.Forward("GetViewport", 1, dev9GetViewport),
		vtable.Forward("SetMaterial", 1, dev9SetMaterial),
		vtable.Forward("GetMaterial", 1, dev9GetMaterial),
		vtable.Forward("SetLight", 2, dev9SetLight),
		vtable.Forward("GetLight", 2, dev9GetLight),
		vtable.Forward("LightEnable", 2, dev9LightEnable),
		vtable.Forward("GetLightEnable", 2, dev9GetLightEnable),
		vtable.Forward("SetClipPlane", 2, dev9SetClipPlane),
		vtable.Forward("GetClipPlane", 2, dev9GetClipPlane),
		vtable.M2("SetRenderState", (*Device).SetRenderState),
		vtable.M2("GetRenderState", (*Device).GetRenderState),
		vtable.Forward("BeginStateBlock", 0, dev9BeginStateBlock),
		vtable.M1("EndStateBlock", (*Device).EndStateBlock),
		vtable.M1("ApplyStateBlock", (*Device).ApplyStateBlock),
		vtable.M1("CaptureStateBlock", (*Device).CaptureStateBlock),
		vtable.M1("DeleteStateBlock", (*Device).DeleteStateBlock),
		vtable.M2("CreateStateBlock", (*Device).CreateStateBlock),
		vtable.Forward("SetClipStatus", 1, dev9SetClipStatus),
		vtable.Forward("GetClipStatus", 1, dev9GetClipStatus),
		vtable.M2("GetTexture", (*Device).GetTexture),
		vtable.M2("SetTexture", (*Device).SetTexture),
		vtable.M3("GetTextureStageState", (*Device).GetTextureStageState),
		vtable.M3("SetTextureStageState", (*Device).SetTextureStageState),
		vtable.Forward("ValidateDevice", 1, dev9ValidateDevice),
		vtable.M3("GetInfo", (*Device).GetInfo),
		vtable.Forward("SetPaletteEntries", 2, dev9SetPaletteEntries),
		vtable.Forward("GetPaletteEntries", 2, dev9GetPaletteEntries),
		vtable.Forward("SetCurrentTexturePalette", 1, dev9SetCurrentTexturePalette),
		vtable.Forward("GetCurrentTexturePalette", 1, dev9GetCurrentTexturePalette),
		vtable.Forward("DrawPrimitive", 3, dev9DrawPrimitive),
		vtable.M5("DrawIndexedPrimitive", (*Device).DrawIndexedPrimitive),
		vtable.Forward("DrawPrimitiveUP", 4, dev9DrawPrimitiveUP),
		vtable.Forward("DrawIndexedPrimitiveUP", 8, dev9DrawIndexedPrimitiveUP),
		vtable.M5("ProcessVertices", (*Device).ProcessVertices),
		vtable.M4("CreateVertexShader", (*Device).CreateVertexShader),
		vtable.M1("SetVertexShader", (*Device).SetVertexShader),
		vtable.M1("GetVertexShader", (*Device).GetVertexShader),
		vtable.M1("DeleteVertexShader", (*Device).DeleteVertexShader),
		vtable.Forward("SetVertexShaderConstant", 3, dev9SetVertexShaderConstantF),
		vtable.Forward("GetVertexShaderConstant", 3, dev9GetVertexShaderConstantF),
		vtable.M3("GetVertexShaderDeclaration", (*Device).GetVertexShaderDeclaration),
		vtable.M3("GetVertexShaderFunction", (*Device).GetVertexShaderFunction),
		vtable.M3("SetStreamSource", (*Device).SetStreamSource),
		vtable.M3("GetStreamSource", (*Device).GetStreamSource),
		vtable.M2("SetIndices", (*Device).SetIndices),
		vtable.M2("GetIndices", (*Device).GetIndices),
		vtable.M2("CreatePixelShader", (*Device).CreatePixelShader),
		vtable.M1("SetPixelShader", (*Device).SetPixelShader),
		vtable.M1("GetPixelShader", (*Device).GetPixelShader),
		vtable.M1("DeletePixelShader", (*Device).DeletePixelShader),
		vtable.Forward("SetPixelShaderConstant", 3, dev9SetPixelShaderConstantF),
		vtable.Forward("GetPixelShaderConstant", 3, dev9GetPixelShaderConstantF),
		vtable.M3("GetPixelShaderFunction", (*Device).GetPixelShaderFunction),
		vtable.Forward("DrawRectPatch", 3, dev9DrawRectPatch),
		vtable.Forward("DrawTriPatch", 3, dev9DrawTriPatch),
		vtable.Forward("DeletePatch", 1, dev9DeletePatch),
	).WithStatus(Status))
}

func (s *Shim) newDevice(real uintptr, parent *Direct3D) uintptr {
	d := &Device{shim: s, d3d: parent, handles: newHandles()}
	d.OnFinal(d.handles.release)
	return s.wrap(deviceLayout, lifetime.KindDevice, d, real)
}

func (d *Device) call(slot int, args ...uintptr) com.HRESULT {
	return Status(com.HRESULT(d.Real().Call(slot, args...)))
}

func (d *Device) unwrap(p uintptr) uintptr {
	return d.shim.reg.Unwrap(p)
}

// ref hands the caller a new reference to this device, or to a fresh
// proxy for real when the device proxy has already been released.
func (d *Device) ref(pp uintptr, real func(out uintptr) uintptr) com.HRESULT {
	if pp == 0 {
		return D3DErrInvalidCall
	}
	if d.TryAddRef() {
		com.WritePtr(pp, d.Native())
		return D3DOK
	}
	return d.shim.fetch(pp, real, func(r uintptr) uintptr {
		return d.shim.newDevice(r, nil)
	})
}

func (d *Device) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := d.QuerySelf(riid, ppv, IIDIDirect3DDevice8); ok {
		return hr
	}
	return d.ForwardQuery(riid, ppv)
}

// ResourceManagerDiscardBytes evicts all managed resources; Direct3D 9
// has no partial eviction.
func (d *Device) ResourceManagerDiscardBytes(bytes uintptr) com.HRESULT {
	return d.call(dev9EvictManagedResources)
}

func (d *Device) GetDirect3D(ppD3D8 uintptr) com.HRESULT {
	if ppD3D8 == 0 {
		return D3DErrInvalidCall
	}
	if d.d3d != nil && d.d3d.TryAddRef() {
		com.WritePtr(ppD3D8, d.d3d.Native())
		return D3DOK
	}
	return d.shim.fetch(ppD3D8, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetDirect3D, out)
	}, d.shim.newDirect3D)
}

func (d *Device) GetDeviceCaps(pCaps uintptr) com.HRESULT {
	if pCaps == 0 {
		return D3DErrInvalidCall
	}
	caps := new(Caps9)
	hr := d.call(dev9GetDeviceCaps, com.Addr(caps))
	if hr.Failed() {
		return hr
	}
	com.Write(pCaps, ConvertCaps(caps))
	return hr
}

func (d *Device) GetDisplayMode(pMode uintptr) com.HRESULT {
	return d.call(dev9GetDisplayMode, 0, pMode)
}

func (d *Device) SetCursorProperties(x, y, pCursorBitmap uintptr) com.HRESULT {
	return d.call(dev9SetCursorProperties, x, y, d.unwrap(pCursorBitmap))
}

func (d *Device) CreateAdditionalSwapChain(pParams, ppSwapChain uintptr) com.HRESULT {
	if pParams == 0 {
		return D3DErrInvalidCall
	}
	params := com.At[PresentParameters8](pParams)
	pp9 := ConvertPresentParameters(params)
	hr := d.shim.fetch(ppSwapChain, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateAdditionalSwapChain, com.Addr(pp9), out)
	}, func(real uintptr) uintptr {
		return d.shim.newSwapChain(d, real)
	})
	runtime.KeepAlive(pp9)
	if hr.Succeeded() {
		WritebackPresentParameters(params, pp9)
	}
	return hr
}

// Reset also returns the state this proxy tracks to its defaults, as the
// device does with its own.
func (d *Device) Reset(pParams uintptr) com.HRESULT {
	if pParams == 0 {
		return D3DErrInvalidCall
	}
	params := com.At[PresentParameters8](pParams)
	pp9 := ConvertPresentParameters(params)
	hr := d.call(dev9Reset, com.Addr(pp9))
	runtime.KeepAlive(pp9)
	if hr.Failed() {
		Logger().Warn("Reset failed", zap.Stringer("status", hr))
		return hr
	}
	WritebackPresentParameters(params, pp9)
	d.baseVertexIndex.Store(0)
	d.currentVS.Store(0)
	d.currentPS.Store(0)
	return hr
}

func (d *Device) GetBackBuffer(index, bufferType, ppBackBuffer uintptr) com.HRESULT {
	return d.shim.fetch(ppBackBuffer, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetBackBuffer, 0, index, bufferType, out)
	}, d.surfaceWrapper())
}

func (d *Device) GetRasterStatus(pStatus uintptr) com.HRESULT {
	return d.call(dev9GetRasterStatus, 0, pStatus)
}

func (d *Device) SetGammaRamp(flags, pRamp uintptr) uint32 {
	d.Real().Call(dev9SetGammaRamp, 0, flags, pRamp)
	return 0
}

func (d *Device) GetGammaRamp(pRamp uintptr) uint32 {
	d.Real().Call(dev9GetGammaRamp, 0, pRamp)
	return 0
}

func (d *Device) CreateTexture(width, height, levels, usage, format, pool, ppTexture uintptr) com.HRESULT {
	if !Supported(Format(format)) {
		return D3DErrNotAvailable
	}
	return d.shim.fetch(ppTexture, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateTexture, width, height, levels, usage, format, pool, out, 0)
	}, func(real uintptr) uintptr {
		return d.shim.newTexture(d, real)
	})
}

func (d *Device) CreateVolumeTexture(width, height, depth, levels, usage, format, pool, ppVolumeTexture uintptr) com.HRESULT {
	if !Supported(Format(format)) {
		return D3DErrNotAvailable
	}
	return d.shim.fetch(ppVolumeTexture, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateVolumeTexture, width, height, depth, levels, usage, format, pool, out, 0)
	}, func(real uintptr) uintptr {
		return d.shim.newVolumeTexture(d, real)
	})
}

func (d *Device) CreateCubeTexture(edge, levels, usage, format, pool, ppCubeTexture uintptr) com.HRESULT {
	if !Supported(Format(format)) {
		return D3DErrNotAvailable
	}
	return d.shim.fetch(ppCubeTexture, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateCubeTexture, edge, levels, usage, format, pool, out, 0)
	}, func(real uintptr) uintptr {
		return d.shim.newCubeTexture(d, real)
	})
}

func (d *Device) CreateVertexBuffer(length, usage, fvf, pool, ppVertexBuffer uintptr) com.HRESULT {
	return d.shim.fetch(ppVertexBuffer, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateVertexBuffer, length, usage, fvf, pool, out, 0)
	}, func(real uintptr) uintptr {
		return d.shim.newVertexBuffer(d, real)
	})
}

func (d *Device) CreateIndexBuffer(length, usage, format, pool, ppIndexBuffer uintptr) com.HRESULT {
	return d.shim.fetch(ppIndexBuffer, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateIndexBuffer, length, usage, format, pool, out, 0)
	}, func(real uintptr) uintptr {
		return d.shim.newIndexBuffer(d, real)
	})
}

func (d *Device) CreateRenderTarget(width, height, format, multiSample, lockable, ppSurface uintptr) com.HRESULT {
	if !Supported(Format(format)) {
		return D3DErrNotAvailable
	}
	return d.shim.fetch(ppSurface, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateRenderTarget, width, height, format, multiSample, 0, lockable, out, 0)
	}, d.surfaceWrapper())
}

func (d *Device) CreateDepthStencilSurface(width, height, format, multiSample, ppSurface uintptr) com.HRESULT {
	return d.shim.fetch(ppSurface, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateDepthStencilSurface, width, height, format, multiSample, 0, 0, out, 0)
	}, d.surfaceWrapper())
}

// CreateImageSurface creates a lockable system memory surface.
func (d *Device) CreateImageSurface(width, height, format, ppSurface uintptr) com.HRESULT {
	if !Supported(Format(format)) {
		return D3DErrNotAvailable
	}
	return d.shim.fetch(ppSurface, func(out uintptr) uintptr {
		return d.Real().Call(dev9CreateOffscreenPlainSurface, width, height, format, PoolSystemMem, out, 0)
	}, d.surfaceWrapper())
}

func (d *Device) surfaceWrapper() func(uintptr) uintptr {
	return func(real uintptr) uintptr {
		return d.shim.newSurface(d, real)
	}
}

func (d *Device) UpdateTexture(pSource, pDest uintptr) com.HRESULT {
	return d.call(dev9UpdateTexture, d.unwrap(pSource), d.unwrap(pDest))
}

func (d *Device) GetFrontBuffer(pDest uintptr) com.HRESULT {
	return d.call(dev9GetFrontBufferData, 0, d.unwrap(pDest))
}

// SetRenderTarget sets the color target when one is given and always
// sets the depth target, a null one unbinding it.
func (d *Device) SetRenderTarget(pRenderTarget, pNewZStencil uintptr) com.HRESULT {
	if pRenderTarget != 0 {
		if hr := d.call(dev9SetRenderTarget, 0, d.unwrap(pRenderTarget)); hr.Failed() {
			return hr
		}
	}
	return d.call(dev9SetDepthStencilSurface, d.unwrap(pNewZStencil))
}

func (d *Device) GetRenderTarget(ppRenderTarget uintptr) com.HRESULT {
	return d.shim.fetch(ppRenderTarget, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetRenderTarget, 0, out)
	}, d.surfaceWrapper())
}

func (d *Device) GetDepthStencilSurface(ppZStencilSurface uintptr) com.HRESULT {
	return d.shim.fetch(ppZStencilSurface, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetDepthStencilSurface, out)
	}, d.surfaceWrapper())
}

func (d *Device) SetRenderState(state, value uintptr) com.HRESULT {
	switch ClassifyRenderState(uint32(state)) {
	case RenderStateDepthBias:
		return d.call(dev9SetRenderState, RSDepthBias, uintptr(ZBiasToDepthBias(uint32(value))))
	case RenderStateSoftwareVP:
		return d.call(dev9SetSoftwareVertexProcessing, value)
	case RenderStateIgnored:
		return D3DOK
	}
	return d.call(dev9SetRenderState, state, value)
}

func (d *Device) GetRenderState(state, pValue uintptr) com.HRESULT {
	if pValue == 0 {
		return D3DErrInvalidCall
	}
	switch ClassifyRenderState(uint32(state)) {
	case RenderStateDepthBias:
		bits := new(uint32)
		hr := d.call(dev9GetRenderState, RSDepthBias, com.Addr(bits))
		if hr.Succeeded() {
			com.Write(pValue, DepthBiasToZBias(*bits))
		}
		return hr
	case RenderStateSoftwareVP:
		com.Write(pValue, uint32(d.Real().Call(dev9GetSoftwareVertexProcessing)))
		return D3DOK
	case RenderStateIgnored:
		com.Write(pValue, uint32(0))
		return D3DOK
	}
	return d.call(dev9GetRenderState, state, pValue)
}

func (d *Device) storeBlock(block uintptr, pToken uintptr) com.HRESULT {
	obj := d.shim.bind(block)
	if obj == nil {
		return D3DErrInvalidCall
	}
	h := d.handles.blocks.Insert(&stateBlock{block: obj})
	if h == 0 {
		obj.Release()
		return com.EOutOfMemory
	}
	com.Write(pToken, uint32(h))
	return D3DOK
}

func (d *Device) EndStateBlock(pToken uintptr) com.HRESULT {
	if pToken == 0 {
		return D3DErrInvalidCall
	}
	block := new(uintptr)
	hr := d.call(dev9EndStateBlock, com.Addr(block))
	if hr.Failed() {
		return hr
	}
	return d.storeBlock(*block, pToken)
}

func (d *Device) CreateStateBlock(blockType, pToken uintptr) com.HRESULT {
	if pToken == 0 {
		return D3DErrInvalidCall
	}
	block := new(uintptr)
	hr := d.call(dev9CreateStateBlock, blockType, com.Addr(block))
	if hr.Failed() {
		return hr
	}
	return d.storeBlock(*block, pToken)
}

func (d *Device) ApplyStateBlock(token uintptr) com.HRESULT {
	b, ok := d.handles.blocks.Get(resource.Handle(token))
	if !ok {
		return D3DErrInvalidCall
	}
	return Status(com.HRESULT(b.block.Call(block9Apply)))
}

func (d *Device) CaptureStateBlock(token uintptr) com.HRESULT {
	b, ok := d.handles.blocks.Get(resource.Handle(token))
	if !ok {
		return D3DErrInvalidCall
	}
	return Status(com.HRESULT(b.block.Call(block9Capture)))
}

func (d *Device) DeleteStateBlock(token uintptr) com.HRESULT {
	if _, ok := d.handles.blocks.Remove(resource.Handle(token)); !ok {
		return D3DErrInvalidCall
	}
	return D3DOK
}

// GetTexture wraps the bound texture according to its resource type.
func (d *Device) GetTexture(stage, ppTexture uintptr) com.HRESULT {
	return d.shim.fetch(ppTexture, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetTexture, stage, out)
	}, func(real uintptr) uintptr {
		return d.shim.newBaseTexture(d, real)
	})
}

func (d *Device) SetTexture(stage, pTexture uintptr) com.HRESULT {
	return d.call(dev9SetTexture, stage, d.unwrap(pTexture))
}

func (d *Device) GetTextureStageState(stage, stateType, pValue uintptr) com.HRESULT {
	if s, ok := SamplerState(uint32(stateType)); ok {
		return d.call(dev9GetSamplerState, stage, uintptr(s), pValue)
	}
	return d.call(dev9GetTextureStageState, stage, stateType, pValue)
}

func (d *Device) SetTextureStageState(stage, stateType, value uintptr) com.HRESULT {
	if s, ok := SamplerState(uint32(stateType)); ok {
		v := FilterValue(uint32(stateType), uint32(value))
		return d.call(dev9SetSamplerState, stage, uintptr(s), uintptr(v))
	}
	return d.call(dev9SetTextureStageState, stage, stateType, value)
}

// GetInfo answers S_FALSE: Direct3D 9 exposes no device information
// through this interface.
func (d *Device) GetInfo(devInfoID, pDevInfoStruct, size uintptr) com.HRESULT {
	Logger().Debug("GetInfo unsupported", zap.Uint32("id", uint32(devInfoID)))
	return com.False
}

// DrawIndexedPrimitive applies the base vertex index recorded by SetIndices.
func (d *Device) DrawIndexedPrimitive(primType, minIndex, numVertices, startIndex, primCount uintptr) com.HRESULT {
	base := uintptr(d.baseVertexIndex.Load())
	return d.call(dev9DrawIndexedPrimitive, primType, base, minIndex, numVertices, startIndex, primCount)
}

func (d *Device) ProcessVertices(srcStartIndex, destIndex, vertexCount, pDestBuffer, flags uintptr) com.HRESULT {
	return d.call(dev9ProcessVertices, srcStartIndex, destIndex, vertexCount, d.unwrap(pDestBuffer), 0, flags)
}

// CreateVertexShader builds a Direct3D 9 declaration from the Direct3D 8
// declaration tokens and, when a function is given, a shader whose
// bytecode declares the inputs those tokens bind.
func (d *Device) CreateVertexShader(pDeclaration, pFunction, pHandle, usage uintptr) com.HRESULT {
	if pHandle == 0 {
		return D3DErrInvalidCall
	}
	tokens, err := ReadDeclaration(pDeclaration)
	if err != nil {
		Logger().Warn("vertex declaration rejected", zap.Error(err))
		return D3DErrInvalidCall
	}
	decl, err := ParseDeclaration(tokens)
	if err != nil {
		Logger().Warn("vertex declaration rejected", zap.Error(err))
		return D3DErrInvalidCall
	}

	vs := &vertexShader{declaration: tokens, constants: decl.Constants}
	real := new(uintptr)
	hr := d.call(dev9CreateVertexDeclaration, com.Addr(&decl.Elements[0]), com.Addr(real))
	runtime.KeepAlive(decl)
	if hr.Failed() {
		return hr
	}
	if vs.decl = d.shim.bind(*real); vs.decl == nil {
		return D3DErrInvalidCall
	}

	if pFunction != 0 {
		fn, err := ReadFunction(pFunction)
		if err == nil {
			var code []uint32
			code, err = InsertDeclarations(fn, decl.Registers)
			if err == nil {
				*real = 0
				hr = d.call(dev9CreateVertexShader, com.Addr(&code[0]), com.Addr(real))
				runtime.KeepAlive(code)
			}
		}
		if err != nil {
			Logger().Warn("vertex shader rejected", zap.Error(err))
			hr = D3DErrInvalidCall
		}
		if hr.Failed() {
			vs.Drop()
			return hr
		}
		vs.shader = d.shim.bind(*real)
		vs.function = fn
	}

	h := d.handles.vertex.Insert(vs)
	if h == 0 {
		vs.Drop()
		return com.EOutOfMemory
	}
	com.Write(pHandle, uint32(h)|vsHandleBit)
	return D3DOK
}

// SetVertexShader accepts either a handle from CreateVertexShader or an
// FVF code.
func (d *Device) SetVertexShader(handle uintptr) com.HRESULT {
	h := uint32(handle)
	if h&vsHandleBit == 0 {
		if hr := d.call(dev9SetVertexShader, 0); hr.Failed() {
			return hr
		}
		if hr := d.call(dev9SetFVF, handle); hr.Failed() {
			return hr
		}
		d.currentVS.Store(h)
		return D3DOK
	}
	vs, ok := d.handles.vertexShader(h)
	if !ok {
		return D3DErrInvalidCall
	}

	if hr := d.call(dev9SetVertexDeclaration, vs.decl.Ptr()); hr.Failed() {
		return hr
	}
	var shader uintptr
	if vs.shader != nil {
		shader = vs.shader.Ptr()
	}
	if hr := d.call(dev9SetVertexShader, shader); hr.Failed() {
		return hr
	}
	for i := range vs.constants {
		c := &vs.constants[i]
		if c.Count() == 0 {
			continue
		}
		hr := d.call(dev9SetVertexShaderConstantF, uintptr(c.Start), com.Addr(&c.Values[0]), uintptr(c.Count()))
		if hr.Failed() {
			Logger().Warn("declaration constants not applied", zap.Stringer("status", hr))
		}
	}
	runtime.KeepAlive(vs)
	d.currentVS.Store(h)
	return D3DOK
}

func (d *Device) GetVertexShader(pHandle uintptr) com.HRESULT {
	if pHandle == 0 {
		return D3DErrInvalidCall
	}
	com.Write(pHandle, d.currentVS.Load())
	return D3DOK
}

func (d *Device) DeleteVertexShader(handle uintptr) com.HRESULT {
	h := uint32(handle)
	if h&vsHandleBit == 0 {
		return D3DErrInvalidCall
	}
	if _, ok := d.handles.vertex.Remove(resource.Handle(h &^ vsHandleBit)); !ok {
		return D3DErrInvalidCall
	}
	d.currentVS.CompareAndSwap(h, 0)
	return D3DOK
}

func (d *Device) GetVertexShaderDeclaration(handle, pData, pSize uintptr) com.HRESULT {
	vs, ok := d.handles.vertexShader(uint32(handle))
	if !ok {
		return D3DErrInvalidCall
	}
	return copyTokens(vs.declaration, pData, pSize)
}

// GetVertexShaderFunction returns the bytecode as the caller supplied it,
// without the inserted declarations.
func (d *Device) GetVertexShaderFunction(handle, pData, pSize uintptr) com.HRESULT {
	vs, ok := d.handles.vertexShader(uint32(handle))
	if !ok || vs.function == nil {
		return D3DErrInvalidCall
	}
	return copyTokens(vs.function, pData, pSize)
}

func (d *Device) SetStreamSource(stream, pStreamData, stride uintptr) com.HRESULT {
	return d.call(dev9SetStreamSource, stream, d.unwrap(pStreamData), 0, stride)
}

func (d *Device) GetStreamSource(stream, ppStreamData, pStride uintptr) com.HRESULT {
	offset := new(uint32)
	return d.shim.fetch(ppStreamData, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetStreamSource, stream, out, com.Addr(offset), pStride)
	}, func(real uintptr) uintptr {
		return d.shim.newVertexBuffer(d, real)
	})
}

// SetIndices records the base vertex index for DrawIndexedPrimitive.
func (d *Device) SetIndices(pIndexData, baseVertexIndex uintptr) com.HRESULT {
	hr := d.call(dev9SetIndices, d.unwrap(pIndexData))
	if hr.Succeeded() {
		d.baseVertexIndex.Store(uint32(baseVertexIndex))
	}
	return hr
}

func (d *Device) GetIndices(ppIndexData, pBaseVertexIndex uintptr) com.HRESULT {
	if pBaseVertexIndex == 0 {
		return D3DErrInvalidCall
	}
	hr := d.shim.fetch(ppIndexData, func(out uintptr) uintptr {
		return d.Real().Call(dev9GetIndices, out)
	}, func(real uintptr) uintptr {
		return d.shim.newIndexBuffer(d, real)
	})
	if hr.Failed() {
		return hr
	}
	com.Write(pBaseVertexIndex, d.baseVertexIndex.Load())
	return hr
}

func (d *Device) CreatePixelShader(pFunction, pHandle uintptr) com.HRESULT {
	if pFunction == 0 || pHandle == 0 {
		return D3DErrInvalidCall
	}
	if !ValidPixelShaderVersion(com.Read[uint32](pFunction)) {
		return D3DErrInvalidCall
	}
	real := new(uintptr)
	hr := d.call(dev9CreatePixelShader, pFunction, com.Addr(real))
	if hr.Failed() {
		return hr
	}
	obj := d.shim.bind(*real)
	if obj == nil {
		return D3DErrInvalidCall
	}
	h := d.handles.pixel.Insert(&pixelShader{shader: obj})
	if h == 0 {
		obj.Release()
		return com.EOutOfMemory
	}
	com.Write(pHandle, uint32(h))
	return D3DOK
}

func (d *Device) SetPixelShader(handle uintptr) com.HRESULT {
	var shader uintptr
	if handle != 0 {
		ps, ok := d.handles.pixel.Get(resource.Handle(handle))
		if !ok {
			return D3DErrInvalidCall
		}
		shader = ps.shader.Ptr()
	}
	hr := d.call(dev9SetPixelShader, shader)
	if hr.Succeeded() {
		d.currentPS.Store(uint32(handle))
	}
	return hr
}

func (d *Device) GetPixelShader(pHandle uintptr) com.HRESULT {
	if pHandle == 0 {
		return D3DErrInvalidCall
	}
	com.Write(pHandle, d.currentPS.Load())
	return D3DOK
}

func (d *Device) DeletePixelShader(handle uintptr) com.HRESULT {
	if _, ok := d.handles.pixel.Remove(resource.Handle(handle)); !ok {
		return D3DErrInvalidCall
	}
	d.currentPS.CompareAndSwap(uint32(handle), 0)
	return D3DOK
}

func (d *Device) GetPixelShaderFunction(handle, pData, pSize uintptr) com.HRESULT {
	ps, ok := d.handles.pixel.Get(resource.Handle(handle))
	if !ok {
		return D3DErrInvalidCall
	}
	return Status(com.HRESULT(ps.shader.Call(shader9GetFunction, pData, pSize)))
}
