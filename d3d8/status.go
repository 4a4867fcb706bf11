package d3d8

import (
	"sort"

	"github.com/wippyai/dxshim/com"
)

// statusMap holds every Direct3D 9 result that a Direct3D 8 caller
// would not recognise, with the code it is reported as.
var statusMap = map[com.HRESULT]com.HRESULT{
	D3DOKNoAutoGen:             D3DOK,
	D3DSNotResident:            D3DOK,
	D3DSResidentInSharedMemory: D3DOK,
	D3DSPresentModeChanged:     D3DOK,
	D3DSPresentOccluded:        D3DOK,

	D3DErrDeviceRemoved: D3DErrDeviceLost,
	D3DErrDeviceHung:    D3DErrDeviceLost,

	D3DErrUnsupportedOverlay:        D3DErrNotAvailable,
	D3DErrUnsupportedOverlayFormat:  D3DErrNotAvailable,
	D3DErrCannotProtectContent:      D3DErrNotAvailable,
	D3DErrUnsupportedCrypto:         D3DErrNotAvailable,
	D3DErrPresentStatisticsDisjoint: D3DErrNotAvailable,

	D3DErrWasStillDrawing: D3DErrInvalidCall,
}

// knownFailures are failure codes Direct3D 8 defines itself.
var knownFailures = map[com.HRESULT]bool{
	D3DErrWrongTextureFormat:        true,
	D3DErrUnsupportedColorOperation: true,
	D3DErrUnsupportedColorArg:       true,
	D3DErrUnsupportedAlphaOperation: true,
	D3DErrUnsupportedAlphaArg:       true,
	D3DErrTooManyOperations:         true,
	D3DErrConflictingTextureFilter:  true,
	D3DErrUnsupportedFactorValue:    true,
	D3DErrConflictingRenderState:    true,
	D3DErrUnsupportedTextureFilter:  true,
	D3DErrConflictingTexturePalette: true,
	D3DErrDriverInternalError:       true,
	D3DErrNotFound:                  true,
	D3DErrMoreData:                  true,
	D3DErrDeviceLost:                true,
	D3DErrDeviceNotReset:            true,
	D3DErrNotAvailable:              true,
	D3DErrInvalidDevice:             true,
	D3DErrInvalidCall:               true,
	D3DErrDriverInvalidCall:         true,
	D3DErrOutOfVideoMemory:          true,
}

// Status maps a Direct3D 9 result onto the Direct3D 8 vocabulary.
// Generic COM codes pass through. Direct3D success codes that version 8
// lacks become D3D_OK, and failures it lacks become D3DERR_INVALIDCALL.
func Status(hr com.HRESULT) com.HRESULT {
	if to, ok := statusMap[hr]; ok {
		return to
	}
	if hr.Succeeded() {
		if hr == com.OK || hr == com.False {
			return hr
		}
		if facility(hr) == facilityD3D {
			return D3DOK
		}
		return hr
	}
	if knownFailures[hr] {
		return hr
	}
	switch facility(hr) {
	case facilityNull, facilityWin32:
		return hr
	case facilityITF:
		// COM reserves ITF codes below 0x200.
		if hr&0xFFFF < 0x0200 {
			return hr
		}
	}
	return D3DErrInvalidCall
}

// StatusRemap is one fixed entry of the status translation.
type StatusRemap struct {
	From, To com.HRESULT
}

// StatusRemaps lists the codes Status rewrites explicitly, by source value.
func StatusRemaps() []StatusRemap {
	out := make([]StatusRemap, 0, len(statusMap))
	for from, to := range statusMap {
		out = append(out, StatusRemap{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

const (
	facilityNull  = 0
	facilityITF   = 4
	facilityWin32 = 7
	facilityD3D   = 0x876
)

func facility(hr com.HRESULT) uint32 {
	return uint32(hr>>16) & 0x1FFF
}
