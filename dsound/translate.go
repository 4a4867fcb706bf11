package dsound

import (
	"unsafe"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
	"github.com/wippyai/dxshim/errors"
)

// BufferDesc is DSBUFFERDESC. DirectX 7 callers pass the shorter
// DSBUFFERDESC1, which ends before Algorithm3D.
type BufferDesc struct {
	Size        uint32
	Flags       uint32
	BufferBytes uint32
	Reserved    uint32
	Format      uintptr
	Algorithm3D com.GUID
}

// CaptureBufferDesc is DSCBUFFERDESC. DSCBUFFERDESC1 ends before FXCount.
type CaptureBufferDesc struct {
	Size        uint32
	Flags       uint32
	BufferBytes uint32
	Reserved    uint32
	Format      uintptr
	FXCount     uint32
	FXDesc      uintptr
}

// WaveFormatEx is WAVEFORMATEX.
type WaveFormatEx struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Extra          uint16
}

// Caps is DSCAPS.
type Caps struct {
	Size                         uint32
	Flags                        uint32
	MinSecondarySampleRate       uint32
	MaxSecondarySampleRate       uint32
	PrimaryBuffers               uint32
	MaxHwMixingAllBuffers        uint32
	MaxHwMixingStaticBuffers     uint32
	MaxHwMixingStreamingBuffers  uint32
	FreeHwMixingAllBuffers       uint32
	FreeHwMixingStaticBuffers    uint32
	FreeHwMixingStreamingBuffers uint32
	MaxHw3DAllBuffers            uint32
	MaxHw3DStaticBuffers         uint32
	MaxHw3DStreamingBuffers      uint32
	FreeHw3DAllBuffers           uint32
	FreeHw3DStaticBuffers        uint32
	FreeHw3DStreamingBuffers     uint32
	TotalHwMemBytes              uint32
	FreeHwMemBytes               uint32
	MaxContigFreeHwMemBytes      uint32
	UnlockTransferRateHwBuffers  uint32
	PlayCpuOverheadSwBuffers     uint32
	Reserved1                    uint32
	Reserved2                    uint32
}

// Structure sizes accepted in dwSize.
const (
	BufferDescSize         = uint32(unsafe.Sizeof(BufferDesc{}))
	BufferDesc1Size        = uint32(unsafe.Offsetof(BufferDesc{}.Algorithm3D))
	CaptureBufferDescSize  = uint32(unsafe.Sizeof(CaptureBufferDesc{}))
	CaptureBufferDesc1Size = uint32(unsafe.Offsetof(CaptureBufferDesc{}.FXCount))
	CapsSize               = uint32(unsafe.Sizeof(Caps{}))
)

// ReadBufferDesc copies a caller's buffer descriptor and widens the
// DirectX 7 layout, giving it the default 3D algorithm.
func ReadBufferDesc(p uintptr) (*BufferDesc, error) {
	if p == 0 {
		return nil, errors.NilPointer(errors.PhaseTranslate, "IDirectSound", "CreateSoundBuffer", "pcDSBufferDesc")
	}
	switch size := com.Read[uint32](p); size {
	case BufferDescSize:
		d := com.Read[BufferDesc](p)
		return &d, nil
	case BufferDesc1Size:
		head := com.Slice[byte](p, int(BufferDesc1Size))
		d := &BufferDesc{}
		copy(unsafe.Slice((*byte)(unsafe.Pointer(d)), BufferDescSize), head)
		d.Size = BufferDescSize
		d.Algorithm3D = *DS3DAlgDefault
		return d, nil
	default:
		return nil, errors.TranslationGap("IDirectSound", "CreateSoundBuffer", "dwSize", size)
	}
}

// ReadCaptureBufferDesc copies a capture descriptor and widens the
// DirectX 7 layout with no effects.
func ReadCaptureBufferDesc(p uintptr) (*CaptureBufferDesc, error) {
	if p == 0 {
		return nil, errors.NilPointer(errors.PhaseTranslate, "IDirectSoundCapture", "CreateCaptureBuffer", "pcDSCBufferDesc")
	}
	switch size := com.Read[uint32](p); size {
	case CaptureBufferDescSize:
		d := com.Read[CaptureBufferDesc](p)
		return &d, nil
	case CaptureBufferDesc1Size:
		head := com.Slice[byte](p, int(CaptureBufferDesc1Size))
		d := &CaptureBufferDesc{}
		copy(unsafe.Slice((*byte)(unsafe.Pointer(d)), CaptureBufferDescSize), head)
		d.Size = CaptureBufferDescSize
		return d, nil
	default:
		return nil, errors.TranslationGap("IDirectSoundCapture", "CreateCaptureBuffer", "dwSize", size)
	}
}

// ApplyBufferOptions rewrites a secondary buffer's location and type
// flags as configured. Primary buffers are left alone.
func ApplyBufferOptions(d *BufferDesc, o *config.DSound) {
	if d.Flags&DSBCapsPrimaryBuffer != 0 {
		return
	}
	switch {
	case o.ForceVoiceManagement:
		d.Flags = d.Flags&^dsbCapsLocMask | DSBCapsLocDefer
	case o.ForceSoftwareMixing:
		d.Flags = d.Flags&^dsbCapsLocMask | DSBCapsLocSoftware
	case o.ForceHardwareMixing:
		d.Flags = d.Flags&^dsbCapsLocMask | DSBCapsLocHardware
	}
	if o.ForceNonStaticBuffers {
		d.Flags &^= DSBCapsStatic
	}
	if o.ForceHQ3DSoftMixing && d.Flags&DSBCapsCtrl3D != 0 && d.Flags&DSBCapsLocHardware == 0 &&
		com.IsEqual(&d.Algorithm3D, DS3DAlgDefault) {
		d.Algorithm3D = *DS3DAlgHRTFFull
	}
}

// ApplyCaps overrides the reported hardware mixing resources.
func ApplyCaps(c *Caps, o *config.DSound) {
	if n := uint32(o.Num2DBuffers); n > 0 {
		c.MaxHwMixingAllBuffers = n
		c.MaxHwMixingStaticBuffers = n
		c.MaxHwMixingStreamingBuffers = n
		c.FreeHwMixingAllBuffers = n
		c.FreeHwMixingStaticBuffers = n
		c.FreeHwMixingStreamingBuffers = n
	}
	if n := uint32(o.Num3DBuffers); n > 0 {
		c.MaxHw3DAllBuffers = n
		c.MaxHw3DStaticBuffers = n
		c.MaxHw3DStreamingBuffers = n
		c.FreeHw3DAllBuffers = n
		c.FreeHw3DStaticBuffers = n
		c.FreeHw3DStreamingBuffers = n
	}
	if o.ForceCertification {
		c.Flags |= DSCapsCertified
	}
}

// CooperativeLevel raises level to exclusive when forced.
func CooperativeLevel(level uint32, o *config.DSound) uint32 {
	if o.ForceExclusiveMode && level < DSSCLExclusive {
		return DSSCLExclusive
	}
	return level
}

// PrimaryFormat builds the configured PCM format for the primary buffer.
func PrimaryFormat(o *config.DSound) *WaveFormatEx {
	align := uint16(o.PrimaryBufferChannels * o.PrimaryBufferBits / 8)
	return &WaveFormatEx{
		FormatTag:      WaveFormatPCM,
		Channels:       uint16(o.PrimaryBufferChannels),
		SamplesPerSec:  uint32(o.PrimaryBufferSamples),
		AvgBytesPerSec: uint32(o.PrimaryBufferSamples) * uint32(align),
		BlockAlign:     align,
		BitsPerSample:  uint16(o.PrimaryBufferBits),
	}
}
