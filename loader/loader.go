package loader

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/errors"
)

// Mode selects where the real implementation comes from.
type Mode string

const (
	// ModeSystem loads a separately named binary, such as the system copy
	// of the library the shim replaces.
	ModeSystem Mode = "system"
	// ModeSelf resolves renamed symbols from the module hosting the shim.
	ModeSelf Mode = "self"
)

// ParseMode accepts a configuration value. Empty means ModeSystem.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSystem:
		return ModeSystem, nil
	case ModeSelf:
		return ModeSelf, nil
	}
	return "", errors.InvalidInput(errors.PhaseConfig, "unknown loader mode "+s)
}

// Library is a loaded binary whose exports can be looked up.
type Library interface {
	Proc(name string) (uintptr, error)
	Close() error
}

// Target describes the real library a shim needs.
type Target struct {
	Mode     Mode
	Library  string
	Prefix   string
	Required []string
	Optional []string
}

func (t Target) describe() string {
	if t.Mode == ModeSelf {
		return "self:" + t.Prefix
	}
	return t.Library
}

// Surface is the set of resolved entry points of a real library.
type Surface struct {
	name    string
	lib     Library
	procs   map[string]uintptr
	missing []string
}

// Load opens the target library and resolves its symbols.
// A missing binary or required symbol yields a LoadFailure error.
func Load(t Target) (*Surface, error) {
	var (
		lib Library
		err error
	)
	switch t.Mode {
	case ModeSystem, "":
		lib, err = openLibrary(t.Library)
	case ModeSelf:
		lib, err = openSelf()
	default:
		return nil, errors.InvalidInput(errors.PhaseLoad, "unknown loader mode "+string(t.Mode))
	}
	if err != nil {
		Logger().Error("open real library", zap.String("library", t.describe()), zap.Error(err))
		return nil, errors.LoadFailure(t.describe(), nil, err)
	}

	s, err := Resolve(lib, t)
	if err != nil {
		lib.Close()
		Logger().Error("resolve real library", zap.Error(err))
		return nil, err
	}
	Logger().Info("real library loaded",
		zap.String("library", s.name),
		zap.Int("symbols", len(s.procs)),
		zap.Strings("missing_optional", s.missing))
	return s, nil
}

// Resolve looks up the target's symbols in an already opened library.
// Every missing required symbol is reported, not only the first.
func Resolve(lib Library, t Target) (*Surface, error) {
	s := &Surface{
		name:  t.describe(),
		lib:   lib,
		procs: make(map[string]uintptr, len(t.Required)+len(t.Optional)),
	}

	var missing []string
	for _, name := range t.Required {
		if p := lookup(lib, t.Prefix+name); p != 0 {
			s.procs[name] = p
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return nil, errors.LoadFailure(s.name, missing, nil)
	}

	for _, name := range t.Optional {
		if p := lookup(lib, t.Prefix+name); p != 0 {
			s.procs[name] = p
			continue
		}
		s.missing = append(s.missing, name)
	}
	return s, nil
}

func lookup(lib Library, name string) uintptr {
	p, err := lib.Proc(name)
	if err != nil {
		return 0
	}
	return p
}

// Name identifies the library for logs.
func (s *Surface) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Proc returns the address of a resolved symbol, or 0.
// A nil Surface resolves nothing.
func (s *Surface) Proc(name string) uintptr {
	if s == nil {
		return 0
	}
	return s.procs[name]
}

// Has reports whether name was resolved.
func (s *Surface) Has(name string) bool {
	return s.Proc(name) != 0
}

// Missing lists optional symbols the library does not export.
func (s *Surface) Missing() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.missing...)
}

// Names lists resolved symbols in sorted order.
func (s *Surface) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.procs))
	for n := range s.procs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close unloads the library. Entry points must not be called afterwards.
func (s *Surface) Close() error {
	if s == nil || s.lib == nil {
		return nil
	}
	err := s.lib.Close()
	s.procs = nil
	s.lib = nil
	return err
}
