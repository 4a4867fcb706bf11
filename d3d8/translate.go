package d3d8

// Cap bits Direct3D 9 reports that a Direct3D 8 caller must not see,
// and the few Direct3D 8 bits that have no version 9 source.
const (
	caps2Allowed = 0x00100000 | // CANCALIBRATEGAMMA
		0x00080000 | // CANRENDERWINDOWED
		0x10000000 | // CANMANAGERESOURCE
		0x20000000 | // DYNAMICTEXTURES
		0x00020000 | // FULLSCREENGAMMA
		0x00000002 | // NO2DDURING3DSCENE
		0x02000000 // RESERVED

	caps3Allowed = 0x00000020 | // ALPHA_FULLSCREEN_FLIP_OR_DISCARD
		0x8000001F // RESERVED

	pmiscCaps9Only = 0x00004000 | // INDEPENDENTWRITEMASKS
		0x00008000 | // PERSTAGECONSTANT
		0x00010000 | // FOGANDSPECULARALPHA
		0x00020000 | // SEPARATEALPHABLEND
		0x00040000 | // MRTINDEPENDENTBITDEPTHS
		0x00080000 | // MRTPOSTPIXELSHADERBLENDING
		0x00100000 // FOGVERTEXCLAMPED

	rasterCaps9Only = 0x01000000 | // SCISSORTEST
		0x02000000 | // SLOPESCALEDEPTHBIAS
		0x04000000 | // DEPTHBIAS
		0x08000000 // MULTISAMPLE_TOGGLE
	rasterCapsZBias = 0x00004000

	blendCaps9Only       = 0x00004000 | 0x00008000 // SRCCOLOR2, INVSRCCOLOR2
	lineCapsAntialias    = 0x00000020
	stencilCapsTwoSided  = 0x00000100
	vtxpCapsTexGenSphere = 0x00000100

	// MaxVertexShaderConst is the most constant registers a
	// Direct3D 8 caller can address.
	MaxVertexShaderConst = 256
)

// Shader version tokens.
const (
	VSVersion10 = 0xFFFE0100
	VSVersion11 = 0xFFFE0101
	PSVersion10 = 0xFFFF0100
	PSVersion11 = 0xFFFF0101
	PSVersion12 = 0xFFFF0102
	PSVersion13 = 0xFFFF0103
	PSVersion14 = 0xFFFF0104
)

// ConvertPresentParameters builds the Direct3D 9 parameters for a
// Direct3D 8 request.
func ConvertPresentParameters(in *PresentParameters8) *PresentParameters9 {
	out := &PresentParameters9{
		BackBufferWidth:           in.BackBufferWidth,
		BackBufferHeight:          in.BackBufferHeight,
		BackBufferFormat:          in.BackBufferFormat,
		BackBufferCount:           in.BackBufferCount,
		MultiSampleType:           in.MultiSampleType,
		SwapEffect:                in.SwapEffect,
		DeviceWindow:              in.DeviceWindow,
		Windowed:                  in.Windowed,
		EnableAutoDepthStencil:    in.EnableAutoDepthStencil,
		AutoDepthStencilFormat:    in.AutoDepthStencilFormat,
		Flags:                     in.Flags,
		FullScreenRefreshRateInHz: in.FullScreenRefreshRateInHz,
		PresentationInterval:      in.FullScreenPresentationInterval,
	}

	// Direct3D 8 presents windowed swap chains without waiting for
	// vertical sync; Direct3D 9 waits unless told otherwise.
	if out.Windowed != 0 {
		out.PresentationInterval = PresentIntervalImmediate
	}
	if out.SwapEffect == SwapEffectCopyVSync {
		out.SwapEffect = SwapEffectCopy
		out.PresentationInterval = PresentIntervalOne
	}
	if out.PresentationInterval == PresentRateUnlimited {
		out.PresentationInterval = PresentIntervalImmediate
	}
	if out.SwapEffect != SwapEffectDiscard {
		out.MultiSampleType = MultisampleNone
	}
	return out
}

// WritebackPresentParameters copies the values Direct3D 9 filled in
// (back buffer size, format and count) to the caller's parameters.
func WritebackPresentParameters(out *PresentParameters8, in *PresentParameters9) {
	out.BackBufferWidth = in.BackBufferWidth
	out.BackBufferHeight = in.BackBufferHeight
	out.BackBufferFormat = in.BackBufferFormat
	out.BackBufferCount = in.BackBufferCount
}

// ConvertCaps reduces Direct3D 9 capabilities to what a Direct3D 8
// caller may rely on.
func ConvertCaps(in *Caps9) Caps8 {
	out := in.Caps8

	out.Caps2 &= caps2Allowed
	out.Caps3 &= caps3Allowed
	out.PrimitiveMiscCaps &^= pmiscCaps9Only
	out.RasterCaps &^= rasterCaps9Only
	out.RasterCaps |= rasterCapsZBias
	out.SrcBlendCaps &^= blendCaps9Only
	out.DestBlendCaps &^= blendCaps9Only
	out.LineCaps &^= lineCapsAntialias
	out.StencilCaps &^= stencilCapsTwoSided
	out.VertexProcessingCaps &^= vtxpCapsTexGenSphere

	if out.VertexShaderVersion > VSVersion11 {
		out.VertexShaderVersion = VSVersion11
	}
	if out.MaxVertexShaderConst > MaxVertexShaderConst {
		out.MaxVertexShaderConst = MaxVertexShaderConst
	}
	if out.PixelShaderVersion > PSVersion14 {
		out.PixelShaderVersion = PSVersion14
	}
	return out
}

// IdentifierFlags maps Direct3D 8 enumeration flags to Direct3D 9: the
// WHQL level is opt-out in version 8 and opt-in in version 9.
func IdentifierFlags(flags uint32) uint32 {
	if flags&EnumNoWHQLLevel == 0 {
		return flags | EnumWHQLLevel
	}
	return flags &^ EnumNoWHQLLevel
}

// ConvertAdapterIdentifier drops the Direct3D 9 device name.
func ConvertAdapterIdentifier(in *AdapterIdentifier9) AdapterIdentifier8 {
	return AdapterIdentifier8{
		Driver:           in.Driver,
		Description:      in.Description,
		DriverVersion:    in.DriverVersion,
		VendorID:         in.VendorID,
		DeviceID:         in.DeviceID,
		SubSysID:         in.SubSysID,
		Revision:         in.Revision,
		DeviceIdentifier: in.DeviceIdentifier,
		WHQLLevel:        in.WHQLLevel,
	}
}

// ConvertSurfaceDesc fills in the Size field Direct3D 9 no longer reports.
func ConvertSurfaceDesc(in *SurfaceDesc9) SurfaceDesc8 {
	return SurfaceDesc8{
		Format:          in.Format,
		Type:            in.Type,
		Usage:           in.Usage,
		Pool:            in.Pool,
		Size:            DataSize(in.Format, in.Width, in.Height, 1),
		MultiSampleType: in.MultiSampleType,
		Width:           in.Width,
		Height:          in.Height,
	}
}

// ConvertVolumeDesc fills in the Size field Direct3D 9 no longer reports.
func ConvertVolumeDesc(in *VolumeDesc9) VolumeDesc8 {
	return VolumeDesc8{
		Format: in.Format,
		Type:   in.Type,
		Usage:  in.Usage,
		Pool:   in.Pool,
		Size:   DataSize(in.Format, in.Width, in.Height, in.Depth),
		Width:  in.Width,
		Height: in.Height,
		Depth:  in.Depth,
	}
}

var formatBits = map[Format]uint32{
	FmtR8G8B8:      24,
	FmtA8R8G8B8:    32,
	FmtX8R8G8B8:    32,
	FmtR5G6B5:      16,
	FmtX1R5G5B5:    16,
	FmtA1R5G5B5:    16,
	FmtA4R4G4B4:    16,
	FmtR3G3B2:      8,
	FmtA8:          8,
	FmtA8R3G3B2:    16,
	FmtX4R4G4B4:    16,
	FmtA2B10G10R10: 32,
	FmtG16R16:      32,
	FmtA8P8:        16,
	FmtP8:          8,
	FmtL8:          8,
	FmtA8L8:        16,
	FmtA4L4:        8,
	FmtV8U8:        16,
	FmtL6V5U5:      16,
	FmtX8L8V8U8:    32,
	FmtQ8W8V8U8:    32,
	FmtV16U16:      32,
	FmtW11V11U10:   32,
	FmtA2W10V10U10: 32,
	FmtD16Lockable: 16,
	FmtD32:         32,
	FmtD15S1:       16,
	FmtD24S8:       32,
	FmtD24X8:       32,
	FmtD24X4S4:     32,
	FmtD16:         16,
	FmtIndex16:     16,
	FmtIndex32:     32,
	FmtUYVY:        16,
	FmtYUY2:        16,
}

// BitsPerPixel returns the size of one pixel of an uncompressed format,
// or 0 when the format is compressed or unknown.
func BitsPerPixel(f Format) uint32 {
	return formatBits[f]
}

// BlockBytes returns the size of one 4x4 block of a DXT format, or 0.
func BlockBytes(f Format) uint32 {
	switch f {
	case FmtDXT1:
		return 8
	case FmtDXT2, FmtDXT3, FmtDXT4, FmtDXT5:
		return 16
	}
	return 0
}

// DataSize returns the bytes a surface or volume of f occupies.
func DataSize(f Format, width, height, depth uint32) uint32 {
	if b := BlockBytes(f); b != 0 {
		bw := max(1, (width+3)/4)
		bh := max(1, (height+3)/4)
		return bw * bh * b * max(1, depth)
	}
	return width * height * max(1, depth) * BitsPerPixel(f) / 8
}

// Supported reports whether a Direct3D 8 format has a Direct3D 9 counterpart.
func Supported(f Format) bool {
	return f != FmtW11V11U10
}
