//go:build !windows

package host

import "os"

func modulePath() string {
	p, _ := os.Executable()
	return p
}

func processPath() string {
	p, _ := os.Executable()
	return p
}
