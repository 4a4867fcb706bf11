package d3d8

import (
	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// child is embedded by every proxy a device hands out.
type child struct {
	lifetime.Object
	dev *Device
}

func (c *child) call(slot int, args ...uintptr) com.HRESULT {
	return Status(com.HRESULT(c.Real().Call(slot, args...)))
}

// GetDevice returns the device proxy, or a new one when the caller has
// already released it.
func (c *child) GetDevice(ppDevice uintptr) com.HRESULT {
	return c.dev.ref(ppDevice, func(out uintptr) uintptr {
		return c.Real().Call(res9GetDevice, out)
	})
}

// query answers QueryInterface with the proxy itself for iids and
// forwards anything else.
func (c *child) query(riid, ppv uintptr, iids ...*com.GUID) com.HRESULT {
	if hr, ok := c.QuerySelf(riid, ppv, iids...); ok {
		return hr
	}
	return c.ForwardQuery(riid, ppv)
}

// resourceSlots returns slots 0-10 shared by every IDirect3DResource8
// derived layout. T embeds child.
func resourceSlots[T any](qi func(*T, uintptr, uintptr) com.HRESULT, addRef, release func(*T) uint32, getDevice func(*T, uintptr) com.HRESULT) []vtable.Slot {
	return []vtable.Slot{
		vtable.M2("QueryInterface", qi),
		vtable.M0("AddRef", addRef),
		vtable.M0("Release", release),
		vtable.M1("GetDevice", getDevice),
		vtable.Pass("SetPrivateData", 4),
		vtable.Pass("GetPrivateData", 3),
		vtable.Pass("FreePrivateData", 1),
		vtable.PassValue("SetPriority", 1),
		vtable.PassValue("GetPriority", 0),
		vtable.PassValue("PreLoad", 0),
		vtable.PassValue("GetType", 0),
	}
}

func baseTextureSlots() []vtable.Slot {
	return []vtable.Slot{
		vtable.PassValue("SetLOD", 1),
		vtable.PassValue("GetLOD", 0),
		vtable.PassValue("GetLevelCount", 0),
	}
}

func layout(name string, groups ...[]vtable.Slot) *vtable.Layout {
	var slots []vtable.Slot
	for _, g := range groups {
		slots = append(slots, g...)
	}
	return vtable.Register(vtable.NewLayout(name, slots...).WithStatus(Status))
}

// Texture proxies IDirect3DTexture8.
type Texture struct{ child }

// CubeTexture proxies IDirect3DCubeTexture8.
type CubeTexture struct{ child }

// VolumeTexture proxies IDirect3DVolumeTexture8.
type VolumeTexture struct{ child }

// Surface proxies IDirect3DSurface8.
type Surface struct{ child }

// Volume proxies IDirect3DVolume8.
type Volume struct{ child }

// VertexBuffer proxies IDirect3DVertexBuffer8.
type VertexBuffer struct{ child }

// IndexBuffer proxies IDirect3DIndexBuffer8.
type IndexBuffer struct{ child }

// SwapChain proxies IDirect3DSwapChain8.
type SwapChain struct{ child }

var (
	textureLayout       *vtable.Layout
	cubeTextureLayout   *vtable.Layout
	volumeTextureLayout *vtable.Layout
	surfaceLayout       *vtable.Layout
	volumeLayout        *vtable.Layout
	vertexBufferLayout  *vtable.Layout
	indexBufferLayout   *vtable.Layout
	swapChainLayout     *vtable.Layout
)

func init() {
	textureLayout = layout("IDirect3DTexture8",
		resourceSlots((*Texture).QueryInterface, (*Texture).AddRef, (*Texture).Release, (*Texture).GetDevice),
		baseTextureSlots(),
		[]vtable.Slot{
			vtable.M2("GetLevelDesc", (*Texture).GetLevelDesc),
			vtable.M2("GetSurfaceLevel", (*Texture).GetSurfaceLevel),
			vtable.Forward("LockRect", 4, tex9LockRect),
			vtable.Forward("UnlockRect", 1, tex9UnlockRect),
			vtable.Forward("AddDirtyRect", 1, tex9AddDirtyRect),
		})

	cubeTextureLayout = layout("IDirect3DCubeTexture8",
		resourceSlots((*CubeTexture).QueryInterface, (*CubeTexture).AddRef, (*CubeTexture).Release, (*CubeTexture).GetDevice),
		baseTextureSlots(),
		[]vtable.Slot{
			vtable.M2("GetLevelDesc", (*CubeTexture).GetLevelDesc),
			vtable.M3("GetCubeMapSurface", (*CubeTexture).GetCubeMapSurface),
			vtable.Forward("LockRect", 5, tex9LockRect),
			vtable.Forward("UnlockRect", 2, tex9UnlockRect),
			vtable.Forward("AddDirtyRect", 2, tex9AddDirtyRect),
		})

	volumeTextureLayout = layout("IDirect3DVolumeTexture8",
		resourceSlots((*VolumeTexture).QueryInterface, (*VolumeTexture).AddRef, (*VolumeTexture).Release, (*VolumeTexture).GetDevice),
		baseTextureSlots(),
		[]vtable.Slot{
			vtable.M2("GetLevelDesc", (*VolumeTexture).GetLevelDesc),
			vtable.M2("GetVolumeLevel", (*VolumeTexture).GetVolumeLevel),
			vtable.Forward("LockBox", 4, tex9LockRect),
			vtable.Forward("UnlockBox", 1, tex9UnlockRect),
			vtable.Forward("AddDirtyBox", 1, tex9AddDirtyRect),
		})

	surfaceLayout = layout("IDirect3DSurface8", []vtable.Slot{
		vtable.M2("QueryInterface", (*Surface).QueryInterface),
		vtable.M0("AddRef", (*Surface).AddRef),
		vtable.M0("Release", (*Surface).Release),
		vtable.M1("GetDevice", (*Surface).GetDevice),
		vtable.Pass("SetPrivateData", 4),
		vtable.Pass("GetPrivateData", 3),
		vtable.Pass("FreePrivateData", 1),
		vtable.M2("GetContainer", (*Surface).GetContainer),
		vtable.M1("GetDesc", (*Surface).GetDesc),
		vtable.Forward("LockRect", 3, surf9LockRect),
		vtable.Forward("UnlockRect", 0, surf9UnlockRect),
	})

	volumeLayout = layout("IDirect3DVolume8", []vtable.Slot{
		vtable.M2("QueryInterface", (*Volume).QueryInterface),
		vtable.M0("AddRef", (*Volume).AddRef),
		vtable.M0("Release", (*Volume).Release),
		vtable.M1("GetDevice", (*Volume).GetDevice),
		vtable.Pass("SetPrivateData", 4),
		vtable.Pass("GetPrivateData", 3),
		vtable.Pass("FreePrivateData", 1),
		vtable.M2("GetContainer", (*Volume).GetContainer),
		vtable.M1("GetDesc", (*Volume).GetDesc),
		vtable.Pass("LockBox", 3),
		vtable.Pass("UnlockBox", 0),
	})

	vertexBufferLayout = layout("IDirect3DVertexBuffer8",
		resourceSlots((*VertexBuffer).QueryInterface, (*VertexBuffer).AddRef, (*VertexBuffer).Release, (*VertexBuffer).GetDevice),
		[]vtable.Slot{
			vtable.Pass("Lock", 4),
			vtable.Pass("Unlock", 0),
			vtable.Pass("GetDesc", 1),
		})

	indexBufferLayout = layout("IDirect3DIndexBuffer8",
		resourceSlots((*IndexBuffer).QueryInterface, (*IndexBuffer).AddRef, (*IndexBuffer).Release, (*IndexBuffer).GetDevice),
		[]vtable.Slot{
			vtable.Pass("Lock", 4),
			vtable.Pass("Unlock", 0),
			vtable.Pass("GetDesc", 1),
		})

	swapChainLayout = layout("IDirect3DSwapChain8", []vtable.Slot{
		vtable.M2("QueryInterface", (*SwapChain).QueryInterface),
		vtable.M0("AddRef", (*SwapChain).AddRef),
		vtable.M0("Release", (*SwapChain).Release),
		vtable.M4("Present", (*SwapChain).Present),
		vtable.M3("GetBackBuffer", (*SwapChain).GetBackBuffer),
	})
}

func (s *Shim) newTexture(d *Device, real uintptr) uintptr {
	return s.wrap(textureLayout, lifetime.KindTexture, &Texture{child{dev: d}}, real)
}

func (s *Shim) newCubeTexture(d *Device, real uintptr) uintptr {
	return s.wrap(cubeTextureLayout, lifetime.KindCubeTexture, &CubeTexture{child{dev: d}}, real)
}

func (s *Shim) newVolumeTexture(d *Device, real uintptr) uintptr {
	return s.wrap(volumeTextureLayout, lifetime.KindVolumeTexture, &VolumeTexture{child{dev: d}}, real)
}

func (s *Shim) newSurface(d *Device, real uintptr) uintptr {
	return s.wrap(surfaceLayout, lifetime.KindSurface, &Surface{child{dev: d}}, real)
}

func (s *Shim) newVolume(d *Device, real uintptr) uintptr {
	return s.wrap(volumeLayout, lifetime.KindVolume, &Volume{child{dev: d}}, real)
}

func (s *Shim) newVertexBuffer(d *Device, real uintptr) uintptr {
	return s.wrap(vertexBufferLayout, lifetime.KindVertexBuffer, &VertexBuffer{child{dev: d}}, real)
}

func (s *Shim) newIndexBuffer(d *Device, real uintptr) uintptr {
	return s.wrap(indexBufferLayout, lifetime.KindIndexBuffer, &IndexBuffer{child{dev: d}}, real)
}

func (s *Shim) newSwapChain(d *Device, real uintptr) uintptr {
	return s.wrap(swapChainLayout, lifetime.KindSwapChain, &SwapChain{child{dev: d}}, real)
}

// newBaseTexture wraps a texture of unknown shape by asking for its type.
func (s *Shim) newBaseTexture(d *Device, real uintptr) uintptr {
	obj := s.bind(real)
	if obj == nil {
		return 0
	}
	switch obj.Call(res9GetType) {
	case RTypeCubeTexture:
		return s.newCubeTexture(d, real)
	case RTypeVolumeTexture:
		return s.newVolumeTexture(d, real)
	}
	return s.newTexture(d, real)
}

func (t *Texture) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return t.query(riid, ppv, IIDIDirect3DResource8, IIDIDirect3DBaseTexture8, IIDIDirect3DTexture8)
}

func (t *Texture) GetLevelDesc(level, pDesc uintptr) com.HRESULT {
	return surfaceDesc(&t.child, pDesc, tex9GetLevelDesc, level)
}

func (t *Texture) GetSurfaceLevel(level, ppSurfaceLevel uintptr) com.HRESULT {
	return t.dev.shim.fetch(ppSurfaceLevel, func(out uintptr) uintptr {
		return t.Real().Call(tex9GetLevel, level, out)
	}, t.dev.surfaceWrapper())
}

func (t *CubeTexture) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return t.query(riid, ppv, IIDIDirect3DResource8, IIDIDirect3DBaseTexture8, IIDIDirect3DCubeTexture8)
}

func (t *CubeTexture) GetLevelDesc(level, pDesc uintptr) com.HRESULT {
	return surfaceDesc(&t.child, pDesc, tex9GetLevelDesc, level)
}

func (t *CubeTexture) GetCubeMapSurface(face, level, ppCubeMapSurface uintptr) com.HRESULT {
	return t.dev.shim.fetch(ppCubeMapSurface, func(out uintptr) uintptr {
		return t.Real().Call(tex9GetLevel, face, level, out)
	}, t.dev.surfaceWrapper())
}

func (t *VolumeTexture) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return t.query(riid, ppv, IIDIDirect3DResource8, IIDIDirect3DBaseTexture8, IIDIDirect3DVolumeTexture8)
}

func (t *VolumeTexture) GetLevelDesc(level, pDesc uintptr) com.HRESULT {
	return volumeDesc(&t.child, pDesc, tex9GetLevelDesc, level)
}

func (t *VolumeTexture) GetVolumeLevel(level, ppVolumeLevel uintptr) com.HRESULT {
	return t.dev.shim.fetch(ppVolumeLevel, func(out uintptr) uintptr {
		return t.Real().Call(tex9GetLevel, level, out)
	}, func(real uintptr) uintptr {
		return t.dev.shim.newVolume(t.dev, real)
	})
}

func (p *Surface) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return p.query(riid, ppv, IIDIDirect3DSurface8)
}

func (p *Surface) GetDesc(pDesc uintptr) com.HRESULT {
	return surfaceDesc(&p.child, pDesc, surf9GetDesc)
}

func (p *Surface) GetContainer(riid, ppContainer uintptr) com.HRESULT {
	return container(&p.child, surf9GetContainer, riid, ppContainer)
}

func (p *Volume) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return p.query(riid, ppv, IIDIDirect3DVolume8)
}

func (p *Volume) GetDesc(pDesc uintptr) com.HRESULT {
	return volumeDesc(&p.child, pDesc, vol9GetDesc)
}

func (p *Volume) GetContainer(riid, ppContainer uintptr) com.HRESULT {
	return container(&p.child, vol9GetContainer, riid, ppContainer)
}

func (b *VertexBuffer) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return b.query(riid, ppv, IIDIDirect3DResource8, IIDIDirect3DVertexBuffer8)
}

func (b *IndexBuffer) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return b.query(riid, ppv, IIDIDirect3DResource8, IIDIDirect3DIndexBuffer8)
}

func (c *SwapChain) QueryInterface(riid, ppv uintptr) com.HRESULT {
	return c.query(riid, ppv, IIDIDirect3DSwapChain8)
}

func (c *SwapChain) Present(pSourceRect, pDestRect, hDestWindowOverride, pDirtyRegion uintptr) com.HRESULT {
	return c.call(swap9Present, pSourceRect, pDestRect, hDestWindowOverride, pDirtyRegion, 0)
}

func (c *SwapChain) GetBackBuffer(index, bufferType, ppBackBuffer uintptr) com.HRESULT {
	return c.dev.shim.fetch(ppBackBuffer, func(out uintptr) uintptr {
		return c.Real().Call(swap9GetBackBuffer, index, bufferType, out)
	}, c.dev.surfaceWrapper())
}

func surfaceDesc(c *child, pDesc uintptr, slot int, args ...uintptr) com.HRESULT {
	if pDesc == 0 {
		return D3DErrInvalidCall
	}
	desc := new(SurfaceDesc9)
	hr := c.call(slot, append(args, com.Addr(desc))...)
	if hr.Failed() {
		return hr
	}
	com.Write(pDesc, ConvertSurfaceDesc(desc))
	return hr
}

func volumeDesc(c *child, pDesc uintptr, slot int, args ...uintptr) com.HRESULT {
	if pDesc == 0 {
		return D3DErrInvalidCall
	}
	desc := new(VolumeDesc9)
	hr := c.call(slot, append(args, com.Addr(desc))...)
	if hr.Failed() {
		return hr
	}
	com.Write(pDesc, ConvertVolumeDesc(desc))
	return hr
}

// containers maps the Direct3D 8 container interfaces onto their
// Direct3D 9 equivalents and the proxy each one is wrapped in.
var containers = []struct {
	iid8, iid9 *com.GUID
	wrap       func(s *Shim, d *Device, real uintptr) uintptr
}{
	{IIDIDirect3DTexture8, IIDIDirect3DTexture9, (*Shim).newTexture},
	{IIDIDirect3DCubeTexture8, IIDIDirect3DCubeTexture9, (*Shim).newCubeTexture},
	{IIDIDirect3DVolumeTexture8, IIDIDirect3DVolumeTexture9, (*Shim).newVolumeTexture},
	{IIDIDirect3DSwapChain8, IIDIDirect3DSwapChain9, (*Shim).newSwapChain},
}

// container answers GetContainer. Device requests return the device
// proxy; texture and swap chain requests are asked of the real object
// under their Direct3D 9 identifiers. Anything else is forwarded.
func container(c *child, slot int, riid, ppContainer uintptr) com.HRESULT {
	if ppContainer == 0 {
		return D3DErrInvalidCall
	}
	if com.Matches(riid, IIDIDirect3DDevice8) {
		return c.GetDevice(ppContainer)
	}
	for _, k := range containers {
		if !com.Matches(riid, k.iid8) {
			continue
		}
		return c.dev.shim.fetch(ppContainer, func(out uintptr) uintptr {
			return c.Real().Call(slot, com.Addr(k.iid9), out)
		}, func(real uintptr) uintptr {
			return k.wrap(c.dev.shim, c.dev, real)
		})
	}
	return c.call(slot, riid, ppContainer)
}
