// Package diag holds optional debugging aids. Everything here is off
// unless the [debug] section of the configuration turns it on.
package diag

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the diag package's logger instance.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the diag package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Failure tones.
const (
	ToneFrequency = 750
	ToneMillis    = 300
)

// Alarm signals fatal shim conditions audibly.
type Alarm struct {
	enabled bool
	beep    func(freq, ms uint32) error
}

// NewAlarm returns an alarm that sounds only when enabled.
func NewAlarm(enabled bool) *Alarm {
	return &Alarm{enabled: enabled, beep: Beep}
}

// Failure logs what failed and beeps when the alarm is enabled.
func (a *Alarm) Failure(what string) {
	if a == nil || !a.enabled {
		return
	}
	Logger().Warn("failure alarm", zap.String("what", what))
	if err := a.beep(ToneFrequency, ToneMillis); err != nil {
		Logger().Debug("beep failed", zap.Error(err))
	}
}
