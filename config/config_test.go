package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DSound.Library != "dsound.dll" || cfg.D3D8.Library != "d3d9.dll" {
		t.Fatalf("default libraries = %q, %q", cfg.DSound.Library, cfg.D3D8.Library)
	}
	if cfg.DSound.PrimaryBufferBits != 16 || cfg.DSound.PrimaryBufferSamples != 44100 {
		t.Fatal("default primary format wrong")
	}
	if cfg.Debug.Beep || cfg.Debug.TraceEnumeration {
		t.Fatal("debug instrumentation must be off by default")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[Logging]
Level = DEBUG
trace_calls = true

[dsound]
loader = self
num_2d_buffers = 32
num_3d_buffers = 16
force_certification = true
force_speaker_config = true
speaker_config = 4
stopped_driver_workaround = true

[d3d8]
library = C:\Games\d3d9.dll

[debug]
beep = true
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Logging.TraceCalls || cfg.Logging.Level != "DEBUG" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	d := cfg.DSound
	if d.Loader != "self" || d.Num2DBuffers != 32 || d.Num3DBuffers != 16 {
		t.Fatalf("dsound = %+v", d)
	}
	if !d.ForceCertification || !d.ForceSpeakerConfig || d.SpeakerConfig != 4 || !d.StoppedDriverWorkaround {
		t.Fatalf("dsound flags = %+v", d)
	}
	if d.Library != "dsound.dll" {
		t.Fatal("unset key lost its default")
	}
	if cfg.D3D8.Library != `C:\Games\d3d9.dll` {
		t.Fatalf("d3d8 library = %q", cfg.D3D8.Library)
	}
	if !cfg.Debug.Beep {
		t.Fatal("debug.beep not read")
	}

	cfg.Normalize()
	if cfg.Logging.Level != "debug" {
		t.Fatal("level not normalised")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("[dsound]\nnum_2d_buffers = many\n")); err == nil {
		t.Fatal("expected error for non-numeric count")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       DSound
		want     DSound
		warnings int
		errs     int
	}{
		{
			name: "voice management clears forced mixing",
			in:   DSound{ForceVoiceManagement: true, ForceSoftwareMixing: true, ForceHardwareMixing: true},
			want: DSound{ForceVoiceManagement: true},
			errs: 1,
		},
		{
			name:     "software wins over hardware",
			in:       DSound{ForceSoftwareMixing: true, ForceHardwareMixing: true},
			want:     DSound{ForceSoftwareMixing: true},
			warnings: 1,
		},
		{
			name: "no conflict",
			in:   DSound{ForceHardwareMixing: true},
			want: DSound{ForceHardwareMixing: true},
		},
		{
			name:     "negative counts ignored",
			in:       DSound{Num2DBuffers: -1, Num3DBuffers: -5},
			want:     DSound{},
			warnings: 2,
		},
		{
			name:     "bad primary bits",
			in:       DSound{ForcePrimaryBufferFormat: true, PrimaryBufferBits: 12, PrimaryBufferChannels: 2, PrimaryBufferSamples: 22050},
			want:     DSound{ForcePrimaryBufferFormat: true, PrimaryBufferBits: 16, PrimaryBufferChannels: 2, PrimaryBufferSamples: 22050},
			warnings: 1,
		},
		{
			name:     "every bad primary field corrected",
			in:       DSound{ForcePrimaryBufferFormat: true, PrimaryBufferBits: 24, PrimaryBufferChannels: 6, PrimaryBufferSamples: 5},
			want:     DSound{ForcePrimaryBufferFormat: true, PrimaryBufferBits: 16, PrimaryBufferChannels: 2, PrimaryBufferSamples: 44100},
			warnings: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DSound: tt.in}
			warnings, errs := cfg.Normalize()
			if cfg.DSound != tt.want {
				t.Errorf("got %+v, want %+v", cfg.DSound, tt.want)
			}
			if len(warnings) != tt.warnings || len(errs) != tt.errs {
				t.Errorf("warnings=%v errs=%v", warnings, errs)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(filepath.Join(dir, "missing.ini"))
	if err != nil || cfg.DSound.Library != "dsound.dll" {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(dir, "dsound.ini")
	if err := os.WriteFile(path, []byte("[dsound]\nforce_exclusive_mode = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DSound.ForceExclusiveMode {
		t.Fatal("force_exclusive_mode not read")
	}
}

func TestProcess_ReadsOnce(t *testing.T) {
	procOnce = sync.Once{}
	t.Cleanup(func() { procOnce = sync.Once{} })

	dir := t.TempDir()
	first := filepath.Join(dir, "first.ini")
	second := filepath.Join(dir, "second.ini")
	os.WriteFile(first, []byte("[d3d8]\nlibrary = first.dll\n"), 0o644)
	os.WriteFile(second, []byte("[d3d8]\nlibrary = second.dll\n"), 0o644)

	t.Setenv(EnvPath, "")
	a, err := Process(first)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Process(second)
	if a != b || b.D3D8.Library != "first.dll" {
		t.Fatalf("snapshot changed: %q", b.D3D8.Library)
	}
}

func TestProcess_EnvOverride(t *testing.T) {
	procOnce = sync.Once{}
	t.Cleanup(func() { procOnce = sync.Once{} })

	path := filepath.Join(t.TempDir(), "env.ini")
	os.WriteFile(path, []byte("[dsound]\nlibrary = env.dll\n"), 0o644)
	t.Setenv(EnvPath, path)

	cfg, err := Process("ignored.ini")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DSound.Library != "env.dll" {
		t.Fatalf("library = %q", cfg.DSound.Library)
	}
}
