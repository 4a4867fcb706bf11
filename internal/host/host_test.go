package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	p := Paths{
		Module:  filepath.Join("games", "thief", "DSound.dll"),
		Process: filepath.Join("games", "thief", "Thief2.exe"),
	}
	if got, want := p.ConfigPath(), filepath.Join("games", "thief", "DSound.ini"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := p.LogPath(), filepath.Join("games", "thief", "dsound-thief2.log"); got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestDiscover(t *testing.T) {
	p := Discover()
	if p.Module == "" || p.Process == "" {
		t.Fatalf("Discover() = %+v", p)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shim.log")

	log, err := NewLogger(path, "warn")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("dropped")
	log.Warn("kept")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("log contents = %s", data)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shim.log")
	log, err := NewLogger(path, "loud")
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(0) || log.Core().Enabled(-1) {
		t.Fatal("unknown level must fall back to info")
	}
}

func TestNewLogger_Unwritable(t *testing.T) {
	if _, err := NewLogger(filepath.Join(t.TempDir(), "missing", "shim.log"), "info"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
