package d3d8

import (
	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
)

const lockReadOnly = 0x00000010

// CopyRects copies rectangles between two surfaces of the same format.
// Direct3D 9 splits the operation by memory pool, so each rectangle is
// routed to UpdateSurface, StretchRect, GetRenderTargetData or a locked
// copy depending on where the two surfaces live.
func (d *Device) CopyRects(pSource, pSourceRects, cRects, pDest, pDestPoints uintptr) com.HRESULT {
	if pSource == 0 || pDest == 0 {
		return D3DErrInvalidCall
	}
	src := d.shim.bind(d.unwrap(pSource))
	dst := d.shim.bind(d.unwrap(pDest))

	var sd, dd SurfaceDesc9
	if hr := Status(com.HRESULT(src.Call(surf9GetDesc, com.Addr(&sd)))); hr.Failed() {
		return hr
	}
	if hr := Status(com.HRESULT(dst.Call(surf9GetDesc, com.Addr(&dd)))); hr.Failed() {
		return hr
	}
	if sd.Format != dd.Format {
		return D3DErrInvalidCall
	}

	rects := []Rect{{Right: int32(sd.Width), Bottom: int32(sd.Height)}}
	if cRects != 0 && pSourceRects != 0 {
		rects = append([]Rect(nil), com.Slice[Rect](pSourceRects, int(cRects))...)
	}
	for _, r := range rects {
		if r.Right < r.Left || r.Bottom < r.Top {
			return D3DErrInvalidCall
		}
	}
	var points []Point
	if pDestPoints != 0 {
		points = com.Slice[Point](pDestPoints, len(rects))
	}

	for i, r := range rects {
		pt := Point{X: r.Left, Y: r.Top}
		if points != nil {
			pt = points[i]
		}
		if hr := d.copyRect(src, dst, &sd, &dd, r, pt); hr.Failed() {
			Logger().Debug("CopyRects failed",
				zap.Stringer("status", hr),
				zap.Uint32("src_pool", sd.Pool),
				zap.Uint32("dst_pool", dd.Pool))
			return hr
		}
	}
	return D3DOK
}

func (d *Device) copyRect(src, dst com.Object, sd, dd *SurfaceDesc9, r Rect, pt Point) com.HRESULT {
	dr := Rect{Left: pt.X, Top: pt.Y, Right: pt.X + r.Right - r.Left, Bottom: pt.Y + r.Bottom - r.Top}

	switch {
	case sd.Pool == PoolSystemMem && dd.Pool == PoolDefault:
		return d.call(dev9UpdateSurface, src.Ptr(), com.Addr(&r), dst.Ptr(), com.Addr(&pt))
	case sd.Pool == PoolDefault && dd.Pool == PoolDefault:
		return d.call(dev9StretchRect, src.Ptr(), com.Addr(&r), dst.Ptr(), com.Addr(&dr), TexFNone)
	case sd.Pool == PoolDefault && dd.Pool == PoolSystemMem && wholeSurface(sd, dd, r, pt):
		return d.call(dev9GetRenderTargetData, src.Ptr(), dst.Ptr())
	}
	return copyLocked(src, dst, sd.Format, r, dr)
}

func wholeSurface(sd, dd *SurfaceDesc9, r Rect, pt Point) bool {
	return sd.Width == dd.Width && sd.Height == dd.Height &&
		r.Left == 0 && r.Top == 0 && pt.X == 0 && pt.Y == 0 &&
		r.Right == int32(sd.Width) && r.Bottom == int32(sd.Height)
}

// copyLocked copies one rectangle row by row through locked memory.
func copyLocked(src, dst com.Object, f Format, r, dr Rect) com.HRESULT {
	width := uint32(r.Right - r.Left)
	height := uint32(r.Bottom - r.Top)
	rowBytes := width * BitsPerPixel(f) / 8
	rows := height
	if b := BlockBytes(f); b != 0 {
		rowBytes = max(1, (width+3)/4) * b
		rows = max(1, (height+3)/4)
	}
	if rowBytes == 0 {
		return D3DErrInvalidCall
	}

	var sl, dl LockedRect
	if hr := Status(com.HRESULT(src.Call(surf9LockRect, com.Addr(&sl), com.Addr(&r), lockReadOnly))); hr.Failed() {
		return hr
	}
	defer src.Call(surf9UnlockRect)
	if hr := Status(com.HRESULT(dst.Call(surf9LockRect, com.Addr(&dl), com.Addr(&dr), 0))); hr.Failed() {
		return hr
	}
	defer dst.Call(surf9UnlockRect)

	for y := uint32(0); y < rows; y++ {
		from := com.Slice[byte](sl.Bits+uintptr(int64(y)*int64(sl.Pitch)), int(rowBytes))
		to := com.Slice[byte](dl.Bits+uintptr(int64(y)*int64(dl.Pitch)), int(rowBytes))
		copy(to, from)
	}
	return D3DOK
}
