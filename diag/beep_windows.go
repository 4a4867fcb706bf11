//go:build windows

package diag

import (
	"golang.org/x/sys/windows"
)

var procBeep = windows.NewLazySystemDLL("kernel32.dll").NewProc("Beep")

// Beep plays a tone on the system speaker. It blocks for ms milliseconds.
func Beep(freq, ms uint32) error {
	if err := procBeep.Find(); err != nil {
		return err
	}
	r, _, err := procBeep.Call(uintptr(freq), uintptr(ms))
	if r == 0 {
		return err
	}
	return nil
}
