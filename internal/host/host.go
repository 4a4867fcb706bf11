// Package host discovers where a shim module runs from and builds its
// process-wide configuration and log sink.
package host

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/dxshim/config"
	"github.com/wippyai/dxshim/diag"
	"github.com/wippyai/dxshim/lifetime"
	"github.com/wippyai/dxshim/loader"
	"github.com/wippyai/dxshim/vtable"
)

// Paths locates the shim module and the process that loaded it.
type Paths struct {
	Module  string
	Process string
}

// Discover returns the paths of the running module and process.
func Discover() Paths {
	proc := processPath()
	if proc == "" {
		proc, _ = os.Executable()
	}
	mod := modulePath()
	if mod == "" {
		mod = proc
	}
	return Paths{Module: mod, Process: proc}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConfigPath is <module>.ini beside the module.
func (p Paths) ConfigPath() string {
	return filepath.Join(filepath.Dir(p.Module), stem(p.Module)+".ini")
}

// LogPath is <module>-<process>.log beside the module, lower-cased.
func (p Paths) LogPath() string {
	name := strings.ToLower(stem(p.Module) + "-" + stem(p.Process) + ".log")
	return filepath.Join(filepath.Dir(p.Module), name)
}

// NewLogger opens path for appending and returns a JSON logger at level.
// An unknown level falls back to info.
func NewLogger(path, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), lvl)
	return zap.New(core), nil
}

// Setup reads the process configuration and installs the log sink into
// the shared packages. Failures never stop the shim: a bad configuration
// file yields the defaults and an unwritable log yields a no-op logger.
func Setup(name string) (*config.Config, *zap.Logger) {
	paths := Discover()
	cfg, cfgErr := config.Process(paths.ConfigPath())
	warnings, errs := cfg.Normalize()

	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = paths.LogPath()
	}
	log, err := NewLogger(logPath, cfg.Logging.Level)
	if err != nil {
		log = zap.NewNop()
	}
	log = log.Named(name)

	vtable.SetLogger(log.Named("vtable"))
	lifetime.SetLogger(log.Named("lifetime"))
	loader.SetLogger(log.Named("loader"))
	diag.SetLogger(log.Named("diag"))

	log.Info("shim attached",
		zap.String("module", paths.Module),
		zap.String("process", paths.Process),
		zap.String("config", paths.ConfigPath()))
	if cfgErr != nil {
		log.Error("configuration unreadable, using defaults", zap.Error(cfgErr))
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	for _, e := range errs {
		log.Error(e)
	}
	return cfg, log
}
