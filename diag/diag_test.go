package diag

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAlarm(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	tests := []struct {
		name    string
		enabled bool
		beeps   int
	}{
		{"disabled", false, 0},
		{"enabled", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var beeps int
			a := NewAlarm(tt.enabled)
			a.beep = func(freq, ms uint32) error {
				if freq != ToneFrequency || ms != ToneMillis {
					t.Errorf("beep(%d, %d)", freq, ms)
				}
				beeps++
				return nil
			}
			a.Failure("dsound.dll")
			if beeps != tt.beeps {
				t.Errorf("beeps = %d, want %d", beeps, tt.beeps)
			}
		})
	}
	if logs.FilterMessage("failure alarm").Len() != 1 {
		t.Fatal("enabled alarm not logged")
	}

	var nilAlarm *Alarm
	nilAlarm.Failure("ignored")
}
