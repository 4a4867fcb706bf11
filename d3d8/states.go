package d3d8

import (
	"math"
)

// Render states whose meaning changed between versions.
const (
	RSLinePattern              = 10
	RSZVisible                 = 30
	RSEdgeAntialias            = 40
	RSZBias                    = 47
	RSSoftwareVertexProcessing = 153
	RSPatchSegments            = 164
	RSDepthBias                = 195
)

// Texture stage states that became sampler states.
const (
	TSSAddressU      = 13
	TSSAddressV      = 14
	TSSBorderColor   = 15
	TSSMagFilter     = 16
	TSSMinFilter     = 17
	TSSMipFilter     = 18
	TSSMipMapLODBias = 19
	TSSMaxMipLevel   = 20
	TSSMaxAnisotropy = 21
	TSSAddressW      = 25
)

// zBiasScale converts Direct3D 8 integer z-bias to Direct3D 9 depth bias.
const zBiasScale = -0.000005

// RenderStateKind says how a Direct3D 8 render state reaches the device.
type RenderStateKind uint8

const (
	// RenderStatePass is forwarded unchanged.
	RenderStatePass RenderStateKind = iota
	// RenderStateDepthBias is ZBIAS rewritten as the DEPTHBIAS float.
	RenderStateDepthBias
	// RenderStateSoftwareVP maps to Set/GetSoftwareVertexProcessing.
	RenderStateSoftwareVP
	// RenderStateIgnored is accepted and dropped; reads return 0.
	RenderStateIgnored
)

// ClassifyRenderState returns how state is handled.
func ClassifyRenderState(state uint32) RenderStateKind {
	switch state {
	case RSZBias:
		return RenderStateDepthBias
	case RSSoftwareVertexProcessing:
		return RenderStateSoftwareVP
	case RSLinePattern, RSZVisible, RSEdgeAntialias, RSPatchSegments:
		return RenderStateIgnored
	}
	return RenderStatePass
}

// ZBiasToDepthBias returns the DEPTHBIAS bits for a ZBIAS value.
func ZBiasToDepthBias(v uint32) uint32 {
	return math.Float32bits(float32(v) * zBiasScale)
}

// DepthBiasToZBias is the inverse of ZBiasToDepthBias.
func DepthBiasToZBias(bits uint32) uint32 {
	return uint32(int32(math.Round(float64(math.Float32frombits(bits)) / zBiasScale)))
}

var samplerStates = map[uint32]uint32{
	TSSAddressU:      1,
	TSSAddressV:      2,
	TSSAddressW:      3,
	TSSBorderColor:   4,
	TSSMagFilter:     5,
	TSSMinFilter:     6,
	TSSMipFilter:     7,
	TSSMipMapLODBias: 8,
	TSSMaxMipLevel:   9,
	TSSMaxAnisotropy: 10,
}

// SamplerState returns the sampler state a texture stage state moved to.
func SamplerState(tss uint32) (uint32, bool) {
	s, ok := samplerStates[tss]
	return s, ok
}

// FilterValue maps Direct3D 8 cubic filters onto their replacements.
// Other state values are returned unchanged.
func FilterValue(tss, v uint32) uint32 {
	switch tss {
	case TSSMagFilter, TSSMinFilter, TSSMipFilter:
	default:
		return v
	}
	switch v {
	case TexFFlatCubic:
		return TexFLinear
	case TexFGaussianCubic:
		return TexFGaussianQuad
	}
	return v
}
