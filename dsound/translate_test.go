package dsound

import (
	"testing"
	"unsafe"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
)

func TestReadBufferDesc(t *testing.T) {
	full := BufferDesc{
		Size:        BufferDescSize,
		Flags:       DSBCapsCtrl3D,
		BufferBytes: 4096,
		Format:      0x1234,
		Algorithm3D: *DS3DAlgHRTFFull,
	}
	d, err := ReadBufferDesc(com.Addr(&full))
	if err != nil {
		t.Fatal(err)
	}
	if *d != full {
		t.Fatalf("full descriptor changed: %+v", d)
	}

	legacy := full
	legacy.Size = BufferDesc1Size
	d, err = ReadBufferDesc(com.Addr(&legacy))
	if err != nil {
		t.Fatal(err)
	}
	if d.Size != BufferDescSize {
		t.Fatalf("Size = %d, want widened %d", d.Size, BufferDescSize)
	}
	if d.Flags != full.Flags || d.BufferBytes != full.BufferBytes || d.Format != full.Format {
		t.Fatal("shared fields not copied")
	}
	if !com.IsEqual(&d.Algorithm3D, DS3DAlgDefault) {
		t.Fatal("legacy descriptor must get DS3DALG_DEFAULT")
	}

	bad := full
	bad.Size = 12
	if _, err := ReadBufferDesc(com.Addr(&bad)); err == nil {
		t.Fatal("unknown size accepted")
	}
	if _, err := ReadBufferDesc(0); err == nil {
		t.Fatal("null descriptor accepted")
	}
}

func TestReadBufferDesc_RoundTrip(t *testing.T) {
	legacy := BufferDesc{Size: BufferDesc1Size, Flags: DSBCapsStatic | DSBCapsLocSoftware, BufferBytes: 88200, Format: 0xABCD}
	d, err := ReadBufferDesc(com.Addr(&legacy))
	if err != nil {
		t.Fatal(err)
	}
	back := unsafe.Slice((*byte)(unsafe.Pointer(d)), BufferDesc1Size)
	orig := unsafe.Slice((*byte)(unsafe.Pointer(&legacy)), BufferDesc1Size)
	for i := 4; i < int(BufferDesc1Size); i++ {
		if back[i] != orig[i] {
			t.Fatalf("byte %d differs after widening", i)
		}
	}
}

func TestReadCaptureBufferDesc(t *testing.T) {
	legacy := CaptureBufferDesc{Size: CaptureBufferDesc1Size, BufferBytes: 1024, Format: 0x99, FXCount: 7, FXDesc: 0x55}
	d, err := ReadCaptureBufferDesc(com.Addr(&legacy))
	if err != nil {
		t.Fatal(err)
	}
	if d.Size != CaptureBufferDescSize || d.BufferBytes != 1024 || d.Format != 0x99 {
		t.Fatalf("widened = %+v", d)
	}
	if d.FXCount != 0 || d.FXDesc != 0 {
		t.Fatal("legacy capture descriptor must carry no effects")
	}

	bad := CaptureBufferDesc{Size: 3}
	if _, err := ReadCaptureBufferDesc(com.Addr(&bad)); err == nil {
		t.Fatal("unknown size accepted")
	}
}

func TestApplyBufferOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  config.DSound
		flags uint32
		want  uint32
	}{
		{"none", config.DSound{}, DSBCapsLocHardware, DSBCapsLocHardware},
		{"software", config.DSound{ForceSoftwareMixing: true}, DSBCapsLocHardware | DSBCapsStatic, DSBCapsLocSoftware | DSBCapsStatic},
		{"hardware", config.DSound{ForceHardwareMixing: true}, DSBCapsLocSoftware, DSBCapsLocHardware},
		{"voice", config.DSound{ForceVoiceManagement: true}, DSBCapsLocSoftware, DSBCapsLocDefer},
		{"non-static", config.DSound{ForceNonStaticBuffers: true}, DSBCapsStatic | DSBCapsCtrl3D, DSBCapsCtrl3D},
		{"primary untouched", config.DSound{ForceSoftwareMixing: true, ForceNonStaticBuffers: true}, DSBCapsPrimaryBuffer | DSBCapsStatic, DSBCapsPrimaryBuffer | DSBCapsStatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &BufferDesc{Flags: tt.flags}
			ApplyBufferOptions(d, &tt.opts)
			if d.Flags != tt.want {
				t.Errorf("flags = %#x, want %#x", d.Flags, tt.want)
			}
		})
	}
}

func TestApplyBufferOptions_HQ3D(t *testing.T) {
	opts := config.DSound{ForceHQ3DSoftMixing: true}

	d := &BufferDesc{Flags: DSBCapsCtrl3D}
	ApplyBufferOptions(d, &opts)
	if !com.IsEqual(&d.Algorithm3D, DS3DAlgHRTFFull) {
		t.Fatal("software 3D buffer not upgraded")
	}

	d = &BufferDesc{Flags: DSBCapsCtrl3D | DSBCapsLocHardware}
	ApplyBufferOptions(d, &opts)
	if !com.IsEqual(&d.Algorithm3D, DS3DAlgDefault) {
		t.Fatal("hardware buffer algorithm changed")
	}

	d = &BufferDesc{Flags: DSBCapsLocSoftware}
	ApplyBufferOptions(d, &opts)
	if !com.IsEqual(&d.Algorithm3D, DS3DAlgDefault) {
		t.Fatal("2D buffer algorithm changed")
	}
}

func TestApplyCaps(t *testing.T) {
	c := &Caps{MaxHwMixingAllBuffers: 32, MaxHw3DAllBuffers: 8}
	ApplyCaps(c, &config.DSound{})
	if c.MaxHwMixingAllBuffers != 32 || c.Flags != 0 {
		t.Fatal("caps changed without options")
	}

	ApplyCaps(c, &config.DSound{Num2DBuffers: 128, Num3DBuffers: 64, ForceCertification: true})
	if c.MaxHwMixingAllBuffers != 128 || c.FreeHwMixingStreamingBuffers != 128 {
		t.Fatal("2D counts not overridden")
	}
	if c.MaxHw3DAllBuffers != 64 || c.FreeHw3DStaticBuffers != 64 {
		t.Fatal("3D counts not overridden")
	}
	if c.Flags&DSCapsCertified == 0 {
		t.Fatal("certified flag not set")
	}
}

func TestCooperativeLevel(t *testing.T) {
	forced := &config.DSound{ForceExclusiveMode: true}
	tests := []struct {
		level uint32
		opts  *config.DSound
		want  uint32
	}{
		{DSSCLNormal, &config.DSound{}, DSSCLNormal},
		{DSSCLNormal, forced, DSSCLExclusive},
		{DSSCLPriority, forced, DSSCLExclusive},
		{DSSCLWritePrimary, forced, DSSCLWritePrimary},
	}
	for _, tt := range tests {
		if got := CooperativeLevel(tt.level, tt.opts); got != tt.want {
			t.Errorf("CooperativeLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestPrimaryFormat(t *testing.T) {
	f := PrimaryFormat(&config.DSound{PrimaryBufferBits: 16, PrimaryBufferSamples: 44100, PrimaryBufferChannels: 2})
	want := WaveFormatEx{FormatTag: WaveFormatPCM, Channels: 2, SamplesPerSec: 44100, AvgBytesPerSec: 176400, BlockAlign: 4, BitsPerSample: 16}
	if *f != want {
		t.Fatalf("PrimaryFormat = %+v", f)
	}
}
