//go:build !windows && !darwin && !linux && !freebsd

package loader

import (
	"github.com/wippyai/dxshim/errors"
)

func openLibrary(name string) (Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "dynamic loading unsupported on this platform")
}

func openSelf() (Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "self resolution requires a Windows host")
}
