package d3d8

import (
	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/resource"
)

// vsHandleBit marks vertex shader handles. Handles without it are FVF codes.
const vsHandleBit = 0x80000000

// vertexShader is what a Direct3D 8 vertex shader handle names: a
// Direct3D 9 declaration, an optional shader, and the original tokens
// the caller may read back.
type vertexShader struct {
	decl        com.Object
	shader      com.Object
	declaration []uint32
	function    []uint32
	constants   []ConstantBlock
}

func (v *vertexShader) Drop() {
	if v.shader != nil {
		v.shader.Release()
	}
	if v.decl != nil {
		v.decl.Release()
	}
}

type pixelShader struct {
	shader com.Object
}

func (p *pixelShader) Drop() {
	p.shader.Release()
}

type stateBlock struct {
	block com.Object
}

func (b *stateBlock) Drop() {
	b.block.Release()
}

// handles owns the per-device handle tables. All three kinds share one
// table so handle values never collide across kinds.
type handles struct {
	table  *resource.Table
	vertex *resource.Typed[*vertexShader]
	pixel  *resource.Typed[*pixelShader]
	blocks *resource.Typed[*stateBlock]
}

func newHandles() *handles {
	t := resource.NewTable()
	return &handles{
		table:  t,
		vertex: resource.NewTyped[*vertexShader](t, uint32(lifetime.KindVertexShader)),
		pixel:  resource.NewTyped[*pixelShader](t, uint32(lifetime.KindPixelShader)),
		blocks: resource.NewTyped[*stateBlock](t, uint32(lifetime.KindStateBlock)),
	}
}

func (h *handles) vertexShader(handle uint32) (*vertexShader, bool) {
	if handle&vsHandleBit == 0 {
		return nil, false
	}
	return h.vertex.Get(resource.Handle(handle &^ vsHandleBit))
}

// release drops every handle, releasing the real objects behind them.
func (h *handles) release() {
	h.table.Clear()
	h.table.Close()
}

// copyTokens implements the Direct3D 8 size query protocol: a null data
// pointer asks for the size, a short buffer gets the size and MOREDATA.
func copyTokens(tokens []uint32, pData, pSize uintptr) com.HRESULT {
	if pSize == 0 {
		return D3DErrInvalidCall
	}
	size := uint32(len(tokens) * 4)
	if pData == 0 {
		com.Write(pSize, size)
		return D3DOK
	}
	if com.Read[uint32](pSize) < size {
		com.Write(pSize, size)
		return D3DErrMoreData
	}
	copy(com.Slice[uint32](pData, len(tokens)), tokens)
	com.Write(pSize, size)
	return D3DOK
}
