package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/dxshim/config"
)

func find(t *testing.T, sections []section, title string) section {
	t.Helper()
	for _, s := range sections {
		if s.title == title {
			return s
		}
	}
	t.Fatalf("no section %q", title)
	return section{}
}

func TestBuildReport_Layouts(t *testing.T) {
	sections, err := buildReport(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		slots int
	}{
		{"IDirect3D8", 16},
		{"IDirect3DDevice8", 97},
		{"IDirect3DSurface8", 11},
		{"IDirectSound8", 12},
		{"IDirectSoundBuffer8", 24},
		{"IClassFactory", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := find(t, sections, tt.name)
			if len(s.rows) != tt.slots {
				t.Fatalf("%d slots, want %d", len(s.rows), tt.slots)
			}
			if s.rows[0][1] != "QueryInterface" || s.rows[2][1] != "Release" {
				t.Errorf("IUnknown prefix = %v %v", s.rows[0], s.rows[2])
			}
		})
	}
}

func TestBuildReport_Tables(t *testing.T) {
	sections, err := buildReport(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}

	rs := find(t, sections, "Render states")
	if len(rs.rows) != 6 {
		t.Errorf("render states = %v", rs.rows)
	}
	if rs.rows[0][0] != "10" {
		t.Errorf("first special render state = %s, want LINEPATTERN", rs.rows[0][0])
	}

	tss := find(t, sections, "Texture stage states")
	if len(tss.rows) != 10 {
		t.Errorf("sampler moves = %d, want 10", len(tss.rows))
	}

	status := find(t, sections, "Direct3D status")
	if len(status.rows) < 3 || !strings.Contains(status.rows[len(status.rows)-1][1], "INVALIDCALL") {
		t.Errorf("status rows = %v", status.rows)
	}
}

func TestBuildReport_BufferFlags(t *testing.T) {
	cfg := config.Default()
	cfg.DSound.ForceSoftwareMixing = true
	cfg.DSound.ForceHQ3DSoftMixing = true
	cfg.DSound.ForceNonStaticBuffers = true

	sections, err := buildReport(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	flags := find(t, sections, "Buffer flags")

	want := [][]string{
		{"0x00000000", "0x00000008", "default"},
		{"0x00000002", "0x00000008", "default"},
		{"0x00000004", "0x00000008", "default"},
		{"0x00000018", "0x00000018", "hrtf full"},
		{"0x00000010", "0x00000018", "hrtf full"},
	}
	for i, w := range want {
		if strings.Join(flags.rows[i], " ") != strings.Join(w, " ") {
			t.Errorf("row %d = %v, want %v", i, flags.rows[i], w)
		}
	}
}

func TestBuildReport_Config(t *testing.T) {
	cfg, err := config.Parse([]byte("[d3d8]\nlibrary = d3d9_real.dll\n"))
	if err != nil {
		t.Fatal(err)
	}
	sections, err := buildReport(cfg, []string{"adjusted"})
	if err != nil {
		t.Fatal(err)
	}
	c := find(t, sections, "Configuration")

	var library, note bool
	for _, r := range c.rows {
		if r[0] == "d3d8" && r[1] == "library" && r[2] == "d3d9_real.dll" {
			library = true
		}
		if r[0] == "normalize" && r[2] == "adjusted" {
			note = true
		}
	}
	if !library {
		t.Error("configured library missing from snapshot")
	}
	if !note {
		t.Error("normalize note missing")
	}
}

func TestLoadConfig_Conflicts(t *testing.T) {
	path := t.TempDir() + "/shim.ini"
	data := "[dsound]\nforce_software_mixing = true\nforce_hardware_mixing = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, notes, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DSound.ForceHardwareMixing || len(notes) != 1 {
		t.Fatalf("hardware = %v, notes = %v", cfg.DSound.ForceHardwareMixing, notes)
	}
}

func TestFilterAndPlain(t *testing.T) {
	sections, err := buildReport(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := filter(sections, "surface8")
	if len(got) != 1 || got[0].title != "IDirect3DSurface8" {
		t.Fatalf("filter = %d sections", len(got))
	}

	var buf bytes.Buffer
	writePlain(&buf, got)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "# IDirect3DSurface8 (layout)" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 2+11 {
		t.Fatalf("%d lines", len(lines))
	}
	if !strings.HasPrefix(lines[2], "0\tQueryInterface\t") {
		t.Errorf("first row = %q", lines[2])
	}
}

func TestInteractive_Navigation(t *testing.T) {
	sections, err := buildReport(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newInteractiveModel(sections)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Fatalf("selected = %d", m.selected)
	}
	if len(m.rows.Rows()) != len(sections[1].rows) {
		t.Fatal("table not reloaded for the selected section")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusRows {
		t.Fatal("tab did not focus rows")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 || m.rows.Cursor() != 1 {
		t.Fatalf("selected %d cursor %d", m.selected, m.rows.Cursor())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusSections {
		t.Fatal("esc did not return to sections")
	}
	if !strings.Contains(m.View(), sections[1].title) {
		t.Error("view misses the selected title")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q did not quit")
	}
}
