package d3d8

import (
	"github.com/wippyai/dxshim/com"
)

// SDKVersion is the D3D_SDK_VERSION passed to Direct3DCreate9.
const SDKVersion = 32

// Direct3D 8 interface identifiers.
var (
	IIDIDirect3D8              = com.MustGUID("{1DD9E8DA-1C77-4D40-B0CF-98FEFDFF9512}")
	IIDIDirect3DDevice8        = com.MustGUID("{7385E5DF-8FE8-41D5-86B6-D7B48547B6CF}")
	IIDIDirect3DResource8      = com.MustGUID("{1B36BB7B-09B7-410A-B445-7D1430D7B33F}")
	IIDIDirect3DBaseTexture8   = com.MustGUID("{B4211CFA-51B9-4A9F-AB78-DB99B2BB678E}")
	IIDIDirect3DTexture8       = com.MustGUID("{E4CDD575-2866-4F01-B12E-7EECE1EC9358}")
	IIDIDirect3DCubeTexture8   = com.MustGUID("{3EE5B968-2ACA-4C34-8BB5-7E0C3D19B750}")
	IIDIDirect3DVolumeTexture8 = com.MustGUID("{4B8AAAFA-140F-42BA-9131-597EAFAA2EAD}")
	IIDIDirect3DVertexBuffer8  = com.MustGUID("{8AEEEAC7-05F9-44D4-B591-000B0DF1CB95}")
	IIDIDirect3DIndexBuffer8   = com.MustGUID("{0E689C9A-053D-44A0-9D92-DB0E3D750F86}")
	IIDIDirect3DSurface8       = com.MustGUID("{B96EEBCA-B326-4EA5-882F-2FF5BAE021DD}")
	IIDIDirect3DVolume8        = com.MustGUID("{BD7349F5-14F1-42E4-9C79-972380DB40C0}")
	IIDIDirect3DSwapChain8     = com.MustGUID("{928C088B-76B9-4C6B-A536-A590853876CD}")
)

// Direct3D 9 identifiers used when asking real objects for containers.
var (
	IIDIDirect3DDevice9        = com.MustGUID("{D0223B96-BF7A-43FD-92BD-A43B0D82B9EB}")
	IIDIDirect3DTexture9       = com.MustGUID("{85C31227-3DE5-4F00-9B3A-F11AC38C18B5}")
	IIDIDirect3DCubeTexture9   = com.MustGUID("{FFF32F81-D953-473A-9223-93D652ABA93F}")
	IIDIDirect3DVolumeTexture9 = com.MustGUID("{2518526C-E789-4111-A7B9-47EF328D13E6}")
	IIDIDirect3DSwapChain9     = com.MustGUID("{794950F2-ADFC-458A-905E-10A10B0B503B}")
)

// Direct3D status codes.
const (
	D3DOK                           = com.OK
	D3DErrWrongTextureFormat        com.HRESULT = 0x88760818
	D3DErrUnsupportedColorOperation com.HRESULT = 0x88760819
	D3DErrUnsupportedColorArg       com.HRESULT = 0x8876081A
	D3DErrUnsupportedAlphaOperation com.HRESULT = 0x8876081B
	D3DErrUnsupportedAlphaArg       com.HRESULT = 0x8876081C
	D3DErrTooManyOperations         com.HRESULT = 0x8876081D
	D3DErrConflictingTextureFilter  com.HRESULT = 0x8876081E
	D3DErrUnsupportedFactorValue    com.HRESULT = 0x8876081F
	D3DErrConflictingRenderState    com.HRESULT = 0x88760821
	D3DErrUnsupportedTextureFilter  com.HRESULT = 0x88760823
	D3DErrConflictingTexturePalette com.HRESULT = 0x88760826
	D3DErrDriverInternalError       com.HRESULT = 0x88760827
	D3DErrNotFound                  com.HRESULT = 0x88760866
	D3DErrMoreData                  com.HRESULT = 0x88760867
	D3DErrDeviceLost                com.HRESULT = 0x88760868
	D3DErrDeviceNotReset            com.HRESULT = 0x88760869
	D3DErrNotAvailable              com.HRESULT = 0x8876086A
	D3DErrInvalidDevice             com.HRESULT = 0x8876086B
	D3DErrInvalidCall               com.HRESULT = 0x8876086C
	D3DErrDriverInvalidCall         com.HRESULT = 0x8876086D
	D3DErrOutOfVideoMemory          com.HRESULT = 0x8876017C
	D3DErrWasStillDrawing           com.HRESULT = 0x8876021C
	D3DErrDeviceRemoved             com.HRESULT = 0x88760870
	D3DErrDeviceHung                com.HRESULT = 0x88760874
	D3DErrUnsupportedOverlay        com.HRESULT = 0x8876087B
	D3DErrUnsupportedOverlayFormat  com.HRESULT = 0x8876087C
	D3DErrCannotProtectContent      com.HRESULT = 0x8876087D
	D3DErrUnsupportedCrypto         com.HRESULT = 0x8876087E
	D3DErrPresentStatisticsDisjoint com.HRESULT = 0x88760884
	D3DOKNoAutoGen                  com.HRESULT = 0x0876086F
	D3DSNotResident                 com.HRESULT = 0x08760875
	D3DSResidentInSharedMemory      com.HRESULT = 0x08760876
	D3DSPresentModeChanged          com.HRESULT = 0x08760877
	D3DSPresentOccluded             com.HRESULT = 0x08760878
)

func init() {
	com.RegisterNames(map[com.HRESULT]string{
		D3DErrWrongTextureFormat:        "D3DERR_WRONGTEXTUREFORMAT",
		D3DErrUnsupportedColorOperation: "D3DERR_UNSUPPORTEDCOLOROPERATION",
		D3DErrUnsupportedColorArg:       "D3DERR_UNSUPPORTEDCOLORARG",
		D3DErrUnsupportedAlphaOperation: "D3DERR_UNSUPPORTEDALPHAOPERATION",
		D3DErrUnsupportedAlphaArg:       "D3DERR_UNSUPPORTEDALPHAARG",
		D3DErrTooManyOperations:         "D3DERR_TOOMANYOPERATIONS",
		D3DErrConflictingTextureFilter:  "D3DERR_CONFLICTINGTEXTUREFILTER",
		D3DErrUnsupportedFactorValue:    "D3DERR_UNSUPPORTEDFACTORVALUE",
		D3DErrConflictingRenderState:    "D3DERR_CONFLICTINGRENDERSTATE",
		D3DErrUnsupportedTextureFilter:  "D3DERR_UNSUPPORTEDTEXTUREFILTER",
		D3DErrConflictingTexturePalette: "D3DERR_CONFLICTINGTEXTUREPALETTE",
		D3DErrDriverInternalError:       "D3DERR_DRIVERINTERNALERROR",
		D3DErrNotFound:                  "D3DERR_NOTFOUND",
		D3DErrMoreData:                  "D3DERR_MOREDATA",
		D3DErrDeviceLost:                "D3DERR_DEVICELOST",
		D3DErrDeviceNotReset:            "D3DERR_DEVICENOTRESET",
		D3DErrNotAvailable:              "D3DERR_NOTAVAILABLE",
		D3DErrInvalidDevice:             "D3DERR_INVALIDDEVICE",
		D3DErrInvalidCall:               "D3DERR_INVALIDCALL",
		D3DErrDriverInvalidCall:         "D3DERR_DRIVERINVALIDCALL",
		D3DErrOutOfVideoMemory:          "D3DERR_OUTOFVIDEOMEMORY",
		D3DErrWasStillDrawing:           "D3DERR_WASSTILLDRAWING",
		D3DErrDeviceRemoved:             "D3DERR_DEVICEREMOVED",
		D3DErrDeviceHung:                "D3DERR_DEVICEHUNG",
		D3DErrUnsupportedOverlay:        "D3DERR_UNSUPPORTEDOVERLAY",
		D3DErrUnsupportedOverlayFormat:  "D3DERR_UNSUPPORTEDOVERLAYFORMAT",
		D3DErrCannotProtectContent:      "D3DERR_CANNOTPROTECT_CONTENT",
		D3DErrUnsupportedCrypto:         "D3DERR_UNSUPPORTEDCRYPTO",
		D3DErrPresentStatisticsDisjoint: "D3DERR_PRESENT_STATISTICS_DISJOINT",
		D3DOKNoAutoGen:                  "D3DOK_NOAUTOGEN",
		D3DSNotResident:                 "S_NOT_RESIDENT",
		D3DSResidentInSharedMemory:      "S_RESIDENT_IN_SHARED_MEMORY",
		D3DSPresentModeChanged:          "S_PRESENT_MODE_CHANGED",
		D3DSPresentOccluded:             "S_PRESENT_OCCLUDED",
	})
}

// Format is a D3DFORMAT value. Direct3D 8 and 9 share the numbering.
type Format uint32

const (
	FmtUnknown     Format = 0
	FmtR8G8B8      Format = 20
	FmtA8R8G8B8    Format = 21
	FmtX8R8G8B8    Format = 22
	FmtR5G6B5      Format = 23
	FmtX1R5G5B5    Format = 24
	FmtA1R5G5B5    Format = 25
	FmtA4R4G4B4    Format = 26
	FmtR3G3B2      Format = 27
	FmtA8          Format = 28
	FmtA8R3G3B2    Format = 29
	FmtX4R4G4B4    Format = 30
	FmtA2B10G10R10 Format = 31
	FmtG16R16      Format = 34
	FmtA8P8        Format = 40
	FmtP8          Format = 41
	FmtL8          Format = 50
	FmtA8L8        Format = 51
	FmtA4L4        Format = 52
	FmtV8U8        Format = 60
	FmtL6V5U5      Format = 61
	FmtX8L8V8U8    Format = 62
	FmtQ8W8V8U8    Format = 63
	FmtV16U16      Format = 64
	FmtW11V11U10   Format = 65
	FmtA2W10V10U10 Format = 67
	FmtD16Lockable Format = 70
	FmtD32         Format = 71
	FmtD15S1       Format = 73
	FmtD24S8       Format = 75
	FmtD24X8       Format = 77
	FmtD24X4S4     Format = 79
	FmtD16         Format = 80
	FmtVertexData  Format = 100
	FmtIndex16     Format = 101
	FmtIndex32     Format = 102
	FmtUYVY        Format = 0x59565955
	FmtYUY2        Format = 0x32595559
	FmtDXT1        Format = 0x31545844
	FmtDXT2        Format = 0x32545844
	FmtDXT3        Format = 0x33545844
	FmtDXT4        Format = 0x34545844
	FmtDXT5        Format = 0x35545844
)

// DisplayFormats are the adapter formats a Direct3D 8 caller can see
// when enumerating modes, in enumeration order.
var DisplayFormats = []Format{FmtX8R8G8B8, FmtR5G6B5, FmtX1R5G5B5}

// Pools, resource types and other enumerations.
const (
	PoolDefault   = 0
	PoolManaged   = 1
	PoolSystemMem = 2
	PoolScratch   = 3

	RTypeSurface       = 1
	RTypeVolume        = 2
	RTypeTexture       = 3
	RTypeVolumeTexture = 4
	RTypeCubeTexture   = 5
	RTypeVertexBuffer  = 6
	RTypeIndexBuffer   = 7

	MultisampleNone = 0

	SwapEffectDiscard   = 1
	SwapEffectFlip      = 2
	SwapEffectCopy      = 3
	SwapEffectCopyVSync = 4

	PresentIntervalDefault   = 0x00000000
	PresentIntervalOne       = 0x00000001
	PresentIntervalImmediate = 0x80000000
	PresentRateUnlimited     = 0x7FFFFFFF

	EnumNoWHQLLevel = 0x00000002 // Direct3D 8
	EnumWHQLLevel   = 0x00000002 // Direct3D 9

	TexFNone          = 0
	TexFPoint         = 1
	TexFLinear        = 2
	TexFAnisotropic   = 3
	TexFFlatCubic     = 4
	TexFGaussianCubic = 5
	TexFPyramidalQuad = 6
	TexFGaussianQuad  = 7
)

// IDirect3D9 method slots.
const (
	d3d9GetAdapterCount             = 4
	d3d9GetAdapterIdentifier        = 5
	d3d9GetAdapterModeCount         = 6
	d3d9EnumAdapterModes            = 7
	d3d9GetAdapterDisplayMode       = 8
	d3d9CheckDeviceType             = 9
	d3d9CheckDeviceFormat           = 10
	d3d9CheckDeviceMultiSampleType  = 11
	d3d9CheckDepthStencilMatch      = 12
	d3d9GetDeviceCaps               = 14
	d3d9GetAdapterMonitor           = 15
	d3d9CreateDevice                = 16
	d3d9RegisterSoftwareDevice      = 3
	d3d9CheckDeviceFormatConversion = 13
)

// IDirect3DDevice9 method slots.
const (
	dev9TestCooperativeLevel        = 3
	dev9GetAvailableTextureMem      = 4
	dev9EvictManagedResources       = 5
	dev9GetDirect3D                 = 6
	dev9GetDeviceCaps               = 7
	dev9GetDisplayMode              = 8
	dev9GetCreationParameters       = 9
	dev9SetCursorProperties         = 10
	dev9SetCursorPosition           = 11
	dev9ShowCursor                  = 12
	dev9CreateAdditionalSwapChain   = 13
	dev9Reset                       = 16
	dev9Present                     = 17
	dev9GetBackBuffer               = 18
	dev9GetRasterStatus             = 19
	dev9SetGammaRamp                = 21
	dev9GetGammaRamp                = 22
	dev9CreateTexture               = 23
	dev9CreateVolumeTexture         = 24
	dev9CreateCubeTexture           = 25
	dev9CreateVertexBuffer          = 26
	dev9CreateIndexBuffer           = 27
	dev9CreateRenderTarget          = 28
	dev9CreateDepthStencilSurface   = 29
	dev9UpdateSurface               = 30
	dev9UpdateTexture               = 31
	dev9GetRenderTargetData         = 32
	dev9GetFrontBufferData          = 33
	dev9StretchRect                 = 34
	dev9CreateOffscreenPlainSurface = 36
	dev9SetRenderTarget             = 37
	dev9GetRenderTarget             = 38
	dev9SetDepthStencilSurface      = 39
	dev9GetDepthStencilSurface      = 40
	dev9BeginScene                  = 41
	dev9EndScene                    = 42
	dev9Clear                       = 43
	dev9SetTransform                = 44
	dev9GetTransform                = 45
	dev9MultiplyTransform           = 46
	dev9SetViewport                 = 47
	dev9GetViewport                 = 48
	dev9SetMaterial                 = 49
	dev9GetMaterial                 = 50
	dev9SetLight                    = 51
	dev9GetLight                    = 52
	dev9LightEnable                 = 53
	dev9GetLightEnable              = 54
	dev9SetClipPlane                = 55
	dev9GetClipPlane                = 56
	dev9SetRenderState              = 57
	dev9GetRenderState              = 58
	dev9CreateStateBlock            = 59
	dev9BeginStateBlock             = 60
	dev9EndStateBlock               = 61
	dev9SetClipStatus               = 62
	dev9GetClipStatus               = 63
	dev9GetTexture                  = 64
	dev9SetTexture                  = 65
	dev9GetTextureStageState        = 66
	dev9SetTextureStageState        = 67
	dev9GetSamplerState             = 68
	dev9SetSamplerState             = 69
	dev9ValidateDevice              = 70
	dev9SetPaletteEntries           = 71
	dev9GetPaletteEntries           = 72
	dev9SetCurrentTexturePalette    = 73
	dev9GetCurrentTexturePalette    = 74
	dev9SetSoftwareVertexProcessing = 77
	dev9GetSoftwareVertexProcessing = 78
	dev9DrawPrimitive               = 81
	dev9DrawIndexedPrimitive        = 82
	dev9DrawPrimitiveUP             = 83
	dev9DrawIndexedPrimitiveUP      = 84
	dev9ProcessVertices             = 85
	dev9CreateVertexDeclaration     = 86
	dev9SetVertexDeclaration        = 87
	dev9SetFVF                      = 89
	dev9CreateVertexShader          = 91
	dev9SetVertexShader             = 92
	dev9SetVertexShaderConstantF    = 94
	dev9GetVertexShaderConstantF    = 95
	dev9SetStreamSource             = 100
	dev9GetStreamSource             = 101
	dev9SetIndices                  = 104
	dev9GetIndices                  = 105
	dev9CreatePixelShader           = 106
	dev9SetPixelShader              = 107
	dev9SetPixelShaderConstantF     = 109
	dev9GetPixelShaderConstantF     = 110
	dev9DrawRectPatch               = 115
	dev9DrawTriPatch                = 116
	dev9DeletePatch                 = 117
)

// Slots shared by the Direct3D 9 resource interfaces.
const (
	res9GetDevice      = 3
	res9GetType        = 10
	tex9GetLevelDesc   = 17
	tex9GetLevel       = 18
	tex9LockRect       = 19
	tex9UnlockRect     = 20
	tex9AddDirtyRect   = 21
	surf9GetContainer  = 11
	surf9GetDesc       = 12
	surf9LockRect      = 13
	surf9UnlockRect    = 14
	vol9GetContainer   = 7
	vol9GetDesc        = 8
	swap9Present       = 3
	swap9GetBackBuffer = 5
	shader9GetFunction = 4
	block9Capture      = 4
	block9Apply        = 5
)
