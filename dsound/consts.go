package dsound

import (
	"github.com/wippyai/dxshim/com"
)

// Interface identifiers.
var (
	IIDIDirectSound              = com.MustGUID("{279AFA83-4981-11CE-A521-0020AF0BE560}")
	IIDIDirectSound8             = com.MustGUID("{C50A7E93-F395-4834-9EF6-7FA99DE50966}")
	IIDIDirectSoundBuffer        = com.MustGUID("{279AFA85-4981-11CE-A521-0020AF0BE560}")
	IIDIDirectSoundBuffer8       = com.MustGUID("{6825A449-7524-4D82-920F-50E36AB3AB1E}")
	IIDIDirectSound3DListener    = com.MustGUID("{279AFA84-4981-11CE-A521-0020AF0BE560}")
	IIDIDirectSound3DBuffer      = com.MustGUID("{279AFA86-4981-11CE-A521-0020AF0BE560}")
	IIDIDirectSoundCapture       = com.MustGUID("{B0210781-89CD-11D0-AF08-00A0C925CD16}")
	IIDIDirectSoundCaptureBuffer = com.MustGUID("{B0210782-89CD-11D0-AF08-00A0C925CD16}")
	IIDIDirectSoundCaptureBuf8   = com.MustGUID("{00990DF4-0DBB-4872-833E-6D303E80AEB6}")
	IIDIDirectSoundFullDuplex    = com.MustGUID("{EDCB4C7A-DAAB-4216-A42E-6C50596DDC1D}")
)

// Class identifiers the shim builds proxying factories for.
var (
	CLSIDDirectSound  = com.MustGUID("{47D4D946-62E8-11CF-93BC-444553540000}")
	CLSIDDirectSound8 = com.MustGUID("{3901CC3F-84B5-4FA4-BA35-AA8172B8A09B}")
)

// 3D algorithms. DS3DALG_DEFAULT is the null GUID.
var (
	DS3DAlgDefault  = &com.GUID{}
	DS3DAlgHRTFFull = com.MustGUID("{C2413340-1C1B-11D2-94F5-00C04FC28ACA}")
)

// DirectSound status codes.
const (
	DSOK                   = com.OK
	DSErrAllocated         com.HRESULT = 0x8878000A
	DSErrControlUnavail    com.HRESULT = 0x8878001E
	DSErrInvalidParam                  = com.EInvalidArg
	DSErrInvalidCall       com.HRESULT = 0x88780032
	DSErrGeneric                       = com.EFail
	DSErrPrioLevelNeeded   com.HRESULT = 0x88780046
	DSErrOutOfMemory                   = com.EOutOfMemory
	DSErrBadFormat         com.HRESULT = 0x88780064
	DSErrUnsupported                   = com.ENotImpl
	DSErrNoDriver          com.HRESULT = 0x88780078
	DSErrAlreadyInit       com.HRESULT = 0x88780082
	DSErrNoAggregation                 = com.ClassENoAggregation
	DSErrBufferLost        com.HRESULT = 0x88780096
	DSErrOtherAppHasPrio   com.HRESULT = 0x887800A0
	DSErrUninitialized     com.HRESULT = 0x887800AA
	DSErrNoInterface                   = com.ENoInterface
	DSErrAccessDenied                  = com.EAccessDenied
	DSErrBufferTooSmall    com.HRESULT = 0x887800B4
	DSErrDS8Required       com.HRESULT = 0x887800BE
	DSErrSendLoop          com.HRESULT = 0x887800C8
	DSErrBadSendBufferGUID com.HRESULT = 0x887800D2
	DSErrObjectNotFound    com.HRESULT = 0x88781161
	DSErrFXUnavailable     com.HRESULT = 0x887800DC
	DSNoVirtualization     com.HRESULT = 0x0878000A
)

func init() {
	com.RegisterNames(map[com.HRESULT]string{
		DSErrAllocated:         "DSERR_ALLOCATED",
		DSErrControlUnavail:    "DSERR_CONTROLUNAVAIL",
		DSErrInvalidCall:       "DSERR_INVALIDCALL",
		DSErrPrioLevelNeeded:   "DSERR_PRIOLEVELNEEDED",
		DSErrBadFormat:         "DSERR_BADFORMAT",
		DSErrNoDriver:          "DSERR_NODRIVER",
		DSErrAlreadyInit:       "DSERR_ALREADYINITIALIZED",
		DSErrBufferLost:        "DSERR_BUFFERLOST",
		DSErrOtherAppHasPrio:   "DSERR_OTHERAPPHASPRIO",
		DSErrUninitialized:     "DSERR_UNINITIALIZED",
		DSErrBufferTooSmall:    "DSERR_BUFFERTOOSMALL",
		DSErrDS8Required:       "DSERR_DS8_REQUIRED",
		DSErrSendLoop:          "DSERR_SENDLOOP",
		DSErrBadSendBufferGUID: "DSERR_BADSENDBUFFERGUID",
		DSErrObjectNotFound:    "DSERR_OBJECTNOTFOUND",
		DSErrFXUnavailable:     "DSERR_FXUNAVAILABLE",
		DSNoVirtualization:     "DS_NO_VIRTUALIZATION",
	})
}

// Buffer capability flags (DSBCAPS_*).
const (
	DSBCapsPrimaryBuffer = 0x00000001
	DSBCapsStatic        = 0x00000002
	DSBCapsLocHardware   = 0x00000004
	DSBCapsLocSoftware   = 0x00000008
	DSBCapsCtrl3D        = 0x00000010
	DSBCapsLocDefer      = 0x00040000

	dsbCapsLocMask = DSBCapsLocHardware | DSBCapsLocSoftware | DSBCapsLocDefer
)

// Device capability, cooperative level and certification values.
const (
	DSCapsCertified = 0x00000040

	DSSCLNormal       = 1
	DSSCLPriority     = 2
	DSSCLExclusive    = 3
	DSSCLWritePrimary = 4

	DSCertified   = 0
	DSUncertified = 1

	DSBStatusPlaying = 0x00000001

	WaveFormatPCM = 1
)

// IDirectSound8 slots.
const (
	soundCreateSoundBuffer = 3 + iota
	soundGetCaps
	soundDuplicateSoundBuffer
	soundSetCooperativeLevel
	soundCompact
	soundGetSpeakerConfig
	soundSetSpeakerConfig
	soundInitialize
	soundVerifyCertification
)

// IDirectSoundBuffer8 slots.
const (
	bufferGetCaps = 3 + iota
	bufferGetCurrentPosition
	bufferGetFormat
	bufferGetVolume
	bufferGetPan
	bufferGetFrequency
	bufferGetStatus
	bufferInitialize
	bufferLock
	bufferPlay
	bufferSetCurrentPosition
	bufferSetFormat
	bufferSetVolume
	bufferSetPan
	bufferSetFrequency
	bufferStop
	bufferUnlock
	bufferRestore
	bufferSetFX
	bufferAcquireResources
	bufferGetObjectInPath
)

// IDirectSoundCapture, IDirectSoundCaptureBuffer8, IDirectSoundFullDuplex
// and IClassFactory slots.
const (
	captureCreateCaptureBuffer = 3

	captureBufferInitialize      = 7
	captureBufferGetObjectInPath = 12
	captureBufferGetFXStatus     = 13

	duplexInitialize = 3

	factoryCreateInstance = 3
)
