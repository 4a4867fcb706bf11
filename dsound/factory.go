package dsound

import (
	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/vtable"
)

// Factory proxies the IClassFactory of CLSID_DirectSound or CLSID_DirectSound8.
type Factory struct {
	lifetime.Object
	shim *Shim
	is8  bool
}

var factoryLayout *vtable.Layout

func init() {
	factoryLayout = vtable.Register(vtable.NewLayout("IClassFactory",
		vtable.M2("QueryInterface", (*Factory).QueryInterface),
		vtable.M0("AddRef", (*Factory).AddRef),
		vtable.M0("Release", (*Factory).Release),
		vtable.M3("CreateInstance", (*Factory).CreateInstance),
		vtable.Pass("LockServer", 1),
	))
}

func (s *Shim) newFactory(real uintptr, is8 bool) uintptr {
	return s.wrap(factoryLayout, lifetime.KindClassFactory, &Factory{shim: s, is8: is8}, real)
}

func (p *Factory) QueryInterface(riid, ppv uintptr) com.HRESULT {
	if hr, ok := p.QuerySelf(riid, ppv, com.IIDIClassFactory); ok {
		return hr
	}
	return p.ForwardQuery(riid, ppv)
}

// CreateInstance wraps DirectSound devices. Other interfaces the real
// factory can produce are returned unwrapped.
func (p *Factory) CreateInstance(outer, riid, ppv uintptr) com.HRESULT {
	if ppv == 0 {
		return com.EPointer
	}
	com.WritePtr(ppv, 0)

	var is8 bool
	switch {
	case com.Matches(riid, IIDIDirectSound8):
		is8 = true
	case com.Matches(riid, IIDIDirectSound):
	case com.Matches(riid, com.IIDIUnknown):
		is8 = p.is8
	default:
		return com.HRESULT(p.Real().Call(factoryCreateInstance, outer, riid, ppv))
	}

	real := new(uintptr)
	hr := com.HRESULT(p.Real().Call(factoryCreateInstance, outer, riid, com.Addr(real)))
	if hr.Failed() {
		return hr
	}
	sound := p.shim.newSound(*real, is8)
	if sound == 0 {
		return DSErrOutOfMemory
	}
	com.WritePtr(ppv, sound)
	return hr
}
