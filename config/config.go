package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/ini.v1"

	"github.com/wippyai/dxshim/errors"
)

// EnvPath overrides the configuration file location.
const EnvPath = "DXSHIM_CONFIG"

// Config is the immutable option snapshot a shim reads at start-up.
type Config struct {
	Logging Logging `ini:"logging"`
	DSound  DSound  `ini:"dsound"`
	D3D8    D3D8    `ini:"d3d8"`
	Debug   Debug   `ini:"debug"`
}

// Logging selects the log sink.
type Logging struct {
	Path       string `ini:"path"`
	Level      string `ini:"level"`
	TraceCalls bool   `ini:"trace_calls"`
}

// DSound holds the DirectSound shim's options.
type DSound struct {
	Loader       string `ini:"loader"`
	Library      string `ini:"library"`
	SymbolPrefix string `ini:"symbol_prefix"`

	Num2DBuffers int `ini:"num_2d_buffers"`
	Num3DBuffers int `ini:"num_3d_buffers"`

	ForceCertification    bool `ini:"force_certification"`
	ForceExclusiveMode    bool `ini:"force_exclusive_mode"`
	ForceSoftwareMixing   bool `ini:"force_software_mixing"`
	ForceHardwareMixing   bool `ini:"force_hardware_mixing"`
	ForceVoiceManagement  bool `ini:"force_voice_management"`
	ForceHQ3DSoftMixing   bool `ini:"force_hq_3d_soft_mixing"`
	ForceNonStaticBuffers bool `ini:"force_non_static_buffers"`
	PreventSpeakerSetup   bool `ini:"prevent_speaker_setup"`

	ForceSpeakerConfig bool `ini:"force_speaker_config"`
	SpeakerConfig      int  `ini:"speaker_config"`

	ForcePrimaryBufferFormat bool `ini:"force_primary_buffer_format"`
	PrimaryBufferBits        int  `ini:"primary_buffer_bits"`
	PrimaryBufferSamples     int  `ini:"primary_buffer_samples"`
	PrimaryBufferChannels    int  `ini:"primary_buffer_channels"`

	StoppedDriverWorkaround bool `ini:"stopped_driver_workaround"`
}

// D3D8 holds the Direct3D 8 shim's options.
type D3D8 struct {
	Loader       string `ini:"loader"`
	Library      string `ini:"library"`
	SymbolPrefix string `ini:"symbol_prefix"`
}

// Debug enables optional instrumentation.
type Debug struct {
	Beep             bool `ini:"beep"`
	TraceEnumeration bool `ini:"trace_enumeration"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		DSound: DSound{
			Loader:                "system",
			Library:               "dsound.dll",
			SymbolPrefix:          "_real_",
			PrimaryBufferBits:     16,
			PrimaryBufferSamples:  44100,
			PrimaryBufferChannels: 2,
		},
		D3D8: D3D8{
			Loader:       "system",
			Library:      "d3d9.dll",
			SymbolPrefix: "_real_",
		},
	}
}

// Parse reads INI data over the defaults. Section and key names are
// case-insensitive.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse configuration")
	}
	if err := f.StrictMapTo(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "map configuration")
	}
	return cfg, nil
}

// LoadFile reads path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize resolves conflicting options in place and returns a message
// per adjustment. Errors are adjustments that discard user intent.
func (c *Config) Normalize() (warnings, errs []string) {
	d := &c.DSound
	if d.ForceVoiceManagement && (d.ForceSoftwareMixing || d.ForceHardwareMixing) {
		d.ForceSoftwareMixing = false
		d.ForceHardwareMixing = false
		errs = append(errs, "force_voice_management conflicts with forced mixing; mixing flags cleared")
	}
	if d.ForceSoftwareMixing && d.ForceHardwareMixing {
		d.ForceHardwareMixing = false
		warnings = append(warnings, "force_software_mixing and force_hardware_mixing both set; using software")
	}
	if d.Num2DBuffers < 0 {
		d.Num2DBuffers = 0
		warnings = append(warnings, "num_2d_buffers negative; ignored")
	}
	if d.Num3DBuffers < 0 {
		d.Num3DBuffers = 0
		warnings = append(warnings, "num_3d_buffers negative; ignored")
	}
	if d.ForcePrimaryBufferFormat {
		if d.PrimaryBufferBits != 8 && d.PrimaryBufferBits != 16 {
			warnings = append(warnings, fmt.Sprintf("primary_buffer_bits %d unsupported; using 16", d.PrimaryBufferBits))
			d.PrimaryBufferBits = 16
		}
		if d.PrimaryBufferChannels < 1 || d.PrimaryBufferChannels > 2 {
			warnings = append(warnings, fmt.Sprintf("primary_buffer_channels %d unsupported; using 2", d.PrimaryBufferChannels))
			d.PrimaryBufferChannels = 2
		}
		if d.PrimaryBufferSamples < 100 || d.PrimaryBufferSamples > 200000 {
			warnings = append(warnings, fmt.Sprintf("primary_buffer_samples %d out of range; using 44100", d.PrimaryBufferSamples))
			d.PrimaryBufferSamples = 44100
		}
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return warnings, errs
}

var (
	procOnce sync.Once
	proc     *Config
	procErr  error
)

// Process returns the process-wide snapshot. The first call reads the
// file at path, or at $DXSHIM_CONFIG when set; later calls return the
// same snapshot whatever path they pass. A malformed file yields the
// defaults together with the parse error.
func Process(path string) (*Config, error) {
	procOnce.Do(func() {
		if env := os.Getenv(EnvPath); env != "" {
			path = env
		}
		proc, procErr = LoadFile(path)
		if procErr != nil {
			proc = Default()
		}
	})
	return proc, procErr
}
