//go:build !windows

package diag

// Beep is silent outside Windows.
func Beep(freq, ms uint32) error {
	return nil
}
