package dsound

import (
	"testing"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
)

func createBuffer(t *testing.T, f *fakeDSound, ds uintptr, flags uint32) uintptr {
	t.Helper()
	desc := BufferDesc{Size: BufferDescSize, Flags: flags, BufferBytes: 1024}
	var buf uintptr
	hr := com.HRESULT(f.native.CallSlot(ds, soundCreateSoundBuffer, com.Addr(&desc), com.Addr(&buf), 0))
	if hr != DSOK {
		t.Fatalf("CreateSoundBuffer = %v", hr)
	}
	return buf
}

func TestCreateSoundBuffer(t *testing.T) {
	cfg := config.Default()
	cfg.DSound.ForceSoftwareMixing = true
	f := newFakeDSound()
	s := f.shim(t, cfg)
	ds := f.createDevice(t, s)

	legacy := BufferDesc{Size: BufferDesc1Size, Flags: DSBCapsLocHardware, BufferBytes: 2048}
	var buf uintptr
	hr := com.HRESULT(f.native.CallSlot(ds, soundCreateSoundBuffer, com.Addr(&legacy), com.Addr(&buf), 0))
	if hr != DSOK {
		t.Fatalf("CreateSoundBuffer = %v", hr)
	}
	if f.lastDesc.Size != BufferDescSize || f.lastDesc.BufferBytes != 2048 {
		t.Fatalf("real saw %+v", f.lastDesc)
	}
	if f.lastDesc.Flags != DSBCapsLocSoftware {
		t.Fatalf("real flags = %#x", f.lastDesc.Flags)
	}
	if buf == 0 || buf == f.buffers[0].Ptr() {
		t.Fatal("buffer not proxied")
	}
	if legacy.Size != BufferDesc1Size {
		t.Fatal("caller descriptor modified")
	}

	bad := BufferDesc{Size: 7}
	hr = com.HRESULT(f.native.CallSlot(ds, soundCreateSoundBuffer, com.Addr(&bad), com.Addr(&buf), 0))
	if hr != DSErrInvalidParam || buf != 0 {
		t.Fatalf("bad size: hr=%v buf=%#x", hr, buf)
	}
	if len(f.buffers) != 1 {
		t.Fatal("real called with rejected descriptor")
	}
}

func TestCreateSoundBuffer_ForcedPrimaryFormat(t *testing.T) {
	cfg := config.Default()
	cfg.DSound.ForcePrimaryBufferFormat = true
	cfg.DSound.PrimaryBufferSamples = 22050
	f := newFakeDSound()
	s := f.shim(t, cfg)
	ds := f.createDevice(t, s)

	primary := createBuffer(t, f, ds, DSBCapsPrimaryBuffer)
	real := f.buffers[0]
	if len(real.Calls(bufferSetFormat)) != 1 {
		t.Fatal("primary format not applied at creation")
	}
	got := f.lastFormat
	if got.SamplesPerSec != 22050 || got.Channels != 2 || got.BitsPerSample != 16 || got.BlockAlign != 4 {
		t.Fatalf("format = %+v", got)
	}

	caller := WaveFormatEx{FormatTag: WaveFormatPCM, Channels: 1, SamplesPerSec: 8000, BitsPerSample: 8}
	f.native.CallSlot(primary, bufferSetFormat, com.Addr(&caller))
	if f.lastFormat.SamplesPerSec != 22050 {
		t.Fatal("caller format reached the primary buffer")
	}

	createBuffer(t, f, ds, 0)
	if _, ok := f.buffers[1].LastCall(bufferSetFormat); ok {
		t.Fatal("secondary buffer format forced")
	}
}

func TestGetCaps(t *testing.T) {
	cfg := config.Default()
	cfg.DSound.Num3DBuffers = 96
	cfg.DSound.ForceCertification = true
	f := newFakeDSound()
	s := f.shim(t, cfg)
	ds := f.createDevice(t, s)

	caps := Caps{Size: CapsSize}
	if hr := com.HRESULT(f.native.CallSlot(ds, soundGetCaps, com.Addr(&caps))); hr != DSOK {
		t.Fatalf("GetCaps = %v", hr)
	}
	if caps.MaxHw3DAllBuffers != 96 || caps.MaxHwMixingAllBuffers != 4 || caps.Flags&DSCapsCertified == 0 {
		t.Fatalf("caps = %+v", caps)
	}

	var cert uint32 = DSUncertified
	if hr := com.HRESULT(f.native.CallSlot(ds, soundVerifyCertification, com.Addr(&cert))); hr != DSOK || cert != DSCertified {
		t.Fatalf("VerifyCertification = %v, %d", hr, cert)
	}
}

func TestSoundOptions(t *testing.T) {
	cfg := config.Default()
	cfg.DSound.ForceExclusiveMode = true
	cfg.DSound.PreventSpeakerSetup = true
	cfg.DSound.ForceSpeakerConfig = true
	cfg.DSound.SpeakerConfig = 5
	f := newFakeDSound()
	s := f.shim(t, cfg)
	ds := f.createDevice(t, s)
	real := f.sounds[0]

	f.native.CallSlot(ds, soundSetCooperativeLevel, 0x100, DSSCLNormal)
	c, _ := real.LastCall(soundSetCooperativeLevel)
	if c.Args[1] != DSSCLExclusive {
		t.Fatalf("level = %d", c.Args[1])
	}

	f.native.CallSlot(ds, soundSetSpeakerConfig, 3)
	if len(real.Calls(soundSetSpeakerConfig)) != 0 {
		t.Fatal("speaker setup reached the device")
	}

	var speakers uint32
	f.native.CallSlot(ds, soundGetSpeakerConfig, com.Addr(&speakers))
	if speakers != 5 || len(real.Calls(soundGetSpeakerConfig)) != 0 {
		t.Fatalf("speaker config = %d", speakers)
	}

	f.native.CallSlot(ds, soundCompact)
	if len(real.Calls(soundCompact)) != 1 {
		t.Fatal("Compact not forwarded")
	}
}

func TestQueryInterface(t *testing.T) {
	f := newFakeDSound()
	s := f.shim(t, config.Default())
	ds := f.createDevice(t, s)
	buf := createBuffer(t, f, ds, DSBCapsCtrl3D)
	proxy, _ := s.Registry().Lookup(buf)

	var out uintptr
	if hr := com.HRESULT(f.native.CallSlot(buf, com.SlotQueryInterface, com.Addr(IIDIDirectSoundBuffer), com.Addr(&out))); hr != DSOK || out != buf {
		t.Fatal("own identity must return self")
	}
	if proxy.(*Buffer).Refs() != 2 {
		t.Fatal("self query did not add a reference")
	}

	tests := []struct {
		name string
		iid  *com.GUID
	}{
		{"buffer8", IIDIDirectSoundBuffer8},
		{"3d buffer", IIDIDirectSound3DBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var child uintptr
			hr := com.HRESULT(f.native.CallSlot(buf, com.SlotQueryInterface, com.Addr(tt.iid), com.Addr(&child)))
			if hr != DSOK {
				t.Fatalf("QueryInterface = %v", hr)
			}
			if child == buf || child == 0 {
				t.Fatal("related interface must be a new proxy")
			}
			if _, ok := s.Registry().Lookup(child); !ok {
				t.Fatal("related interface not proxied")
			}
			f.native.CallSlot(child, com.SlotRelease)
		})
	}

	unknown := com.MustGUID("{11111111-2222-3333-4444-555555555555}")
	f.native.CallSlot(buf, com.SlotQueryInterface, com.Addr(unknown), com.Addr(&out))
	if out != 0xBEEF {
		t.Fatal("unknown interface must forward unmodified")
	}

	if hr := com.HRESULT(f.native.CallSlot(buf, com.SlotQueryInterface, com.Addr(IIDIDirectSound3DBuffer), 0)); hr != com.EPointer {
		t.Fatalf("null ppv = %v", hr)
	}
}

func TestSound_QueryDirectSound8(t *testing.T) {
	f := newFakeDSound()
	s := f.shim(t, config.Default())

	var ds uintptr
	s.DirectSoundCreate(0, com.Addr(&ds), 0)
	var ds8 uintptr
	hr := com.HRESULT(f.native.CallSlot(ds, com.SlotQueryInterface, com.Addr(IIDIDirectSound8), com.Addr(&ds8)))
	if hr != DSOK || ds8 == ds {
		t.Fatal("IDirectSound8 on a legacy device must be a new proxy")
	}
	v, _ := s.Registry().Lookup(ds8)
	if !v.(*Sound).is8 {
		t.Fatal("new proxy not marked IDirectSound8")
	}

	var again uintptr
	f.native.CallSlot(ds8, com.SlotQueryInterface, com.Addr(IIDIDirectSound8), com.Addr(&again))
	if again != ds8 {
		t.Fatal("IDirectSound8 proxy must answer for itself")
	}
}

func TestStoppedDriverWorkaround(t *testing.T) {
	for _, tt := range []struct {
		name      string
		enabled   bool
		status    uint32
		wantWrite uint32
	}{
		{"off", false, 0, 200},
		{"stopped", true, 0, 100},
		{"playing", true, DSBStatusPlaying, 200},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.DSound.StoppedDriverWorkaround = tt.enabled
			f := newFakeDSound()
			f.status = tt.status
			s := f.shim(t, cfg)
			buf := createBuffer(t, f, f.createDevice(t, s), 0)

			var play, write uint32
			f.native.CallSlot(buf, bufferGetCurrentPosition, com.Addr(&play), com.Addr(&write))
			if play != 100 || write != tt.wantWrite {
				t.Fatalf("play=%d write=%d", play, write)
			}
		})
	}
}

func TestDuplicateSoundBuffer(t *testing.T) {
	f := newFakeDSound()
	s := f.shim(t, config.Default())
	ds := f.createDevice(t, s)
	buf := createBuffer(t, f, ds, 0)

	var dup uintptr
	if hr := com.HRESULT(f.native.CallSlot(ds, soundDuplicateSoundBuffer, buf, com.Addr(&dup))); hr != DSOK {
		t.Fatalf("DuplicateSoundBuffer = %v", hr)
	}
	c, _ := f.sounds[0].LastCall(soundDuplicateSoundBuffer)
	if c.Args[0] != f.buffers[0].Ptr() {
		t.Fatal("proxy passed to the real device instead of the real buffer")
	}
	if dup == buf || dup == f.buffers[1].Ptr() {
		t.Fatal("duplicate not proxied")
	}
}

func TestBuffer_EightOnlyMethods(t *testing.T) {
	f := newFakeDSound()
	s := f.shim(t, config.Default())
	buf := createBuffer(t, f, f.createDevice(t, s), 0)

	if hr := com.HRESULT(f.native.CallSlot(buf, bufferSetFX, 0, 0, 0)); hr != DSErrUnsupported {
		t.Fatalf("SetFX on legacy buffer = %v", hr)
	}
	var b8 uintptr
	f.native.CallSlot(buf, com.SlotQueryInterface, com.Addr(IIDIDirectSoundBuffer8), com.Addr(&b8))
	if hr := com.HRESULT(f.native.CallSlot(b8, bufferSetFX, 0, 0, 0)); hr != DSOK {
		t.Fatalf("SetFX on IDirectSoundBuffer8 = %v", hr)
	}
}
