package d3d8

import (
	"unsafe"

	"github.com/wippyai/dxshim/com"
)

// PresentParameters8 is D3DPRESENT_PARAMETERS as Direct3D 8 defines it.
type PresentParameters8 struct {
	BackBufferWidth                uint32
	BackBufferHeight               uint32
	BackBufferFormat               Format
	BackBufferCount                uint32
	MultiSampleType                uint32
	SwapEffect                     uint32
	DeviceWindow                   uintptr
	Windowed                       int32
	EnableAutoDepthStencil         int32
	AutoDepthStencilFormat         Format
	Flags                          uint32
	FullScreenRefreshRateInHz      uint32
	FullScreenPresentationInterval uint32
}

// PresentParameters9 is the Direct3D 9 D3DPRESENT_PARAMETERS.
type PresentParameters9 struct {
	BackBufferWidth           uint32
	BackBufferHeight          uint32
	BackBufferFormat          Format
	BackBufferCount           uint32
	MultiSampleType           uint32
	MultiSampleQuality        uint32
	SwapEffect                uint32
	DeviceWindow              uintptr
	Windowed                  int32
	EnableAutoDepthStencil    int32
	AutoDepthStencilFormat    Format
	Flags                     uint32
	FullScreenRefreshRateInHz uint32
	PresentationInterval      uint32
}

// Caps8 is D3DCAPS8. Direct3D 9 extends the same layout, so Caps9 embeds it.
type Caps8 struct {
	DeviceType               uint32
	AdapterOrdinal           uint32
	Caps                     uint32
	Caps2                    uint32
	Caps3                    uint32
	PresentationIntervals    uint32
	CursorCaps               uint32
	DevCaps                  uint32
	PrimitiveMiscCaps        uint32
	RasterCaps               uint32
	ZCmpCaps                 uint32
	SrcBlendCaps             uint32
	DestBlendCaps            uint32
	AlphaCmpCaps             uint32
	ShadeCaps                uint32
	TextureCaps              uint32
	TextureFilterCaps        uint32
	CubeTextureFilterCaps    uint32
	VolumeTextureFilterCaps  uint32
	TextureAddressCaps       uint32
	VolumeTextureAddressCaps uint32
	LineCaps                 uint32
	MaxTextureWidth          uint32
	MaxTextureHeight         uint32
	MaxVolumeExtent          uint32
	MaxTextureRepeat         uint32
	MaxTextureAspectRatio    uint32
	MaxAnisotropy            uint32
	MaxVertexW               float32
	GuardBandLeft            float32
	GuardBandTop             float32
	GuardBandRight           float32
	GuardBandBottom          float32
	ExtentsAdjust            float32
	StencilCaps              uint32
	FVFCaps                  uint32
	TextureOpCaps            uint32
	MaxTextureBlendStages    uint32
	MaxSimultaneousTextures  uint32
	VertexProcessingCaps     uint32
	MaxActiveLights          uint32
	MaxUserClipPlanes        uint32
	MaxVertexBlendMatrices   uint32
	MaxVertexBlendMatrixIdx  uint32
	MaxPointSize             float32
	MaxPrimitiveCount        uint32
	MaxVertexIndex           uint32
	MaxStreams               uint32
	MaxStreamStride          uint32
	VertexShaderVersion      uint32
	MaxVertexShaderConst     uint32
	PixelShaderVersion       uint32
	MaxPixelShaderValue      float32
}

// Caps9 is D3DCAPS9: the Direct3D 8 fields followed by 23 more words.
type Caps9 struct {
	Caps8
	Extended [23]uint32
}

// AdapterIdentifier8 is D3DADAPTER_IDENTIFIER8.
type AdapterIdentifier8 struct {
	Driver           [512]byte
	Description      [512]byte
	DriverVersion    uint64
	VendorID         uint32
	DeviceID         uint32
	SubSysID         uint32
	Revision         uint32
	DeviceIdentifier com.GUID
	WHQLLevel        uint32
}

// AdapterIdentifier9 is D3DADAPTER_IDENTIFIER9.
type AdapterIdentifier9 struct {
	Driver           [512]byte
	Description      [512]byte
	DeviceName       [32]byte
	DriverVersion    uint64
	VendorID         uint32
	DeviceID         uint32
	SubSysID         uint32
	Revision         uint32
	DeviceIdentifier com.GUID
	WHQLLevel        uint32
}

// SurfaceDesc8 is D3DSURFACE_DESC as Direct3D 8 defines it.
type SurfaceDesc8 struct {
	Format          Format
	Type            uint32
	Usage           uint32
	Pool            uint32
	Size            uint32
	MultiSampleType uint32
	Width           uint32
	Height          uint32
}

// SurfaceDesc9 is the Direct3D 9 D3DSURFACE_DESC.
type SurfaceDesc9 struct {
	Format             Format
	Type               uint32
	Usage              uint32
	Pool               uint32
	MultiSampleType    uint32
	MultiSampleQuality uint32
	Width              uint32
	Height             uint32
}

// VolumeDesc8 is D3DVOLUME_DESC as Direct3D 8 defines it.
type VolumeDesc8 struct {
	Format Format
	Type   uint32
	Usage  uint32
	Pool   uint32
	Size   uint32
	Width  uint32
	Height uint32
	Depth  uint32
}

// VolumeDesc9 is the Direct3D 9 D3DVOLUME_DESC.
type VolumeDesc9 struct {
	Format Format
	Type   uint32
	Usage  uint32
	Pool   uint32
	Width  uint32
	Height uint32
	Depth  uint32
}

// DisplayMode is D3DDISPLAYMODE, identical in both versions.
type DisplayMode struct {
	Width       uint32
	Height      uint32
	RefreshRate uint32
	Format      Format
}

// Rect is a Win32 RECT.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Point is a Win32 POINT.
type Point struct {
	X, Y int32
}

// LockedRect is D3DLOCKED_RECT.
type LockedRect struct {
	Pitch int32
	Bits  uintptr
}

// VertexElement is D3DVERTEXELEMENT9.
type VertexElement struct {
	Stream     uint16
	Offset     uint16
	Type       uint8
	Method     uint8
	Usage      uint8
	UsageIndex uint8
}

// DeclEnd terminates a vertex element array.
var DeclEnd = VertexElement{Stream: 0xFF, Type: declTypeUnused}

// Structure sizes used to validate caller memory.
const (
	Caps8Size = uint32(unsafe.Sizeof(Caps8{}))
	Caps9Size = uint32(unsafe.Sizeof(Caps9{}))
)
