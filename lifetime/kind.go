package lifetime

// Kind identifies which legacy interface shape a proxy presents.
// It doubles as the type ID of the proxy's registry handle.
type Kind uint32

const (
	KindSound Kind = iota + 1
	KindBuffer
	KindBuffer3D
	KindListener
	KindCapture
	KindCaptureBuffer
	KindDuplex
	KindEnumerator
	KindClassFactory
	KindDirect3D
	KindDevice
	KindSwapChain
	KindSurface
	KindTexture
	KindCubeTexture
	KindVolumeTexture
	KindVolume
	KindVertexBuffer
	KindIndexBuffer
	KindVertexShader
	KindPixelShader
	KindStateBlock
)

var kindNames = map[Kind]string{
	KindSound:         "sound",
	KindBuffer:        "buffer",
	KindBuffer3D:      "buffer3d",
	KindListener:      "listener",
	KindCapture:       "capture",
	KindCaptureBuffer: "capture-buffer",
	KindDuplex:        "duplex",
	KindEnumerator:    "enumerator",
	KindClassFactory:  "class-factory",
	KindDirect3D:      "direct3d",
	KindDevice:        "device",
	KindSwapChain:     "swap-chain",
	KindSurface:       "surface",
	KindTexture:       "texture",
	KindCubeTexture:   "cube-texture",
	KindVolumeTexture: "volume-texture",
	KindVolume:        "volume",
	KindVertexBuffer:  "vertex-buffer",
	KindIndexBuffer:   "index-buffer",
	KindVertexShader:  "vertex-shader",
	KindPixelShader:   "pixel-shader",
	KindStateBlock:    "state-block",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}
