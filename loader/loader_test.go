package loader

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/dxshim/errors"
	"github.com/wippyai/dxshim/internal/comtest"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeSystem, false},
		{"system", ModeSystem, false},
		{" Self ", ModeSelf, false},
		{"hook", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	lib := &comtest.Library{Procs: map[string]uintptr{
		"DirectSoundCreate8": 0x100,
		"DirectSoundCreate":  0x200,
		"GetDeviceID":        0x300,
	}}

	s, err := Resolve(lib, Target{
		Library:  "dsound.dll",
		Required: []string{"DirectSoundCreate8", "DirectSoundCreate"},
		Optional: []string{"GetDeviceID", "DirectSoundFullDuplexCreate"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if s.Proc("DirectSoundCreate8") != 0x100 || s.Proc("GetDeviceID") != 0x300 {
		t.Fatal("resolved addresses mismatch")
	}
	if s.Has("DirectSoundFullDuplexCreate") {
		t.Fatal("absent optional symbol reported present")
	}
	if m := s.Missing(); len(m) != 1 || m[0] != "DirectSoundFullDuplexCreate" {
		t.Fatalf("Missing() = %v", m)
	}
	if n := s.Names(); strings.Join(n, ",") != "DirectSoundCreate,DirectSoundCreate8,GetDeviceID" {
		t.Fatalf("Names() = %v", n)
	}

	if err := s.Close(); err != nil || !lib.Closed {
		t.Fatal("Close did not close the library")
	}
	if s.Proc("DirectSoundCreate8") != 0 {
		t.Fatal("closed surface still resolves")
	}
}

func TestResolve_Prefix(t *testing.T) {
	lib := &comtest.Library{Procs: map[string]uintptr{
		"_real_Direct3DCreate9": 0x500,
		"Direct3DCreate9":       0x600,
	}}
	s, err := Resolve(lib, Target{Mode: ModeSelf, Prefix: "_real_", Required: []string{"Direct3DCreate9"}})
	if err != nil {
		t.Fatal(err)
	}
	if s.Proc("Direct3DCreate9") != 0x500 {
		t.Fatal("prefix not applied")
	}
	if s.Name() != "self:_real_" {
		t.Fatalf("Name() = %q", s.Name())
	}
}

func TestResolve_MissingRequired(t *testing.T) {
	lib := &comtest.Library{Procs: map[string]uintptr{"DirectSoundCreate": 0x1}}

	s, err := Resolve(lib, Target{
		Library:  "dsound.dll",
		Required: []string{"DirectSoundCreate", "DirectSoundCreate8", "DllGetClassObject"},
	})
	if s != nil {
		t.Fatal("expected no surface")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindLoadFailure}) {
		t.Fatalf("expected LoadFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "DirectSoundCreate8, DllGetClassObject") {
		t.Fatalf("missing symbols not listed: %v", err)
	}
}

func TestNilSurface(t *testing.T) {
	var s *Surface
	if s.Proc("x") != 0 || s.Has("x") || s.Missing() != nil || s.Names() != nil || s.Name() != "" {
		t.Fatal("nil surface must resolve nothing")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Failures(t *testing.T) {
	_, err := Load(Target{Mode: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}

	_, err = Load(Target{Mode: ModeSystem, Library: "dxshim-no-such-library-7f3a"})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindLoadFailure}) {
		t.Fatalf("expected LoadFailure, got %v", err)
	}
}
