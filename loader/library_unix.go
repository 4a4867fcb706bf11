//go:build darwin || linux || freebsd

package loader

import (
	"github.com/ebitengine/purego"

	"github.com/wippyai/dxshim/errors"
)

type sharedObject struct {
	h uintptr
}

func openLibrary(name string) (Library, error) {
	h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, err
	}
	return &sharedObject{h: h}, nil
}

func openSelf() (Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "self resolution requires a Windows host")
}

func (o *sharedObject) Proc(name string) (uintptr, error) {
	return purego.Dlsym(o.h, name)
}

func (o *sharedObject) Close() error {
	if o.h == 0 {
		return nil
	}
	err := purego.Dlclose(o.h)
	o.h = 0
	return err
}
