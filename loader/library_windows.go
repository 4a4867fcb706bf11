//go:build windows

package loader

import (
	"reflect"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

type module struct {
	h     windows.Handle
	owned bool
}

// openLibrary loads name. Bare names are searched in the system directory
// only, so a shim installed under the same name never loads itself.
func openLibrary(name string) (Library, error) {
	flags := uintptr(windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if strings.ContainsAny(name, `\/:`) {
		flags = windows.LOAD_WITH_ALTERED_SEARCH_PATH
	}
	h, err := windows.LoadLibraryEx(name, 0, flags)
	if err != nil {
		return nil, err
	}
	return &module{h: h, owned: true}, nil
}

// openSelf returns the module containing this code without taking a reference.
func openSelf() (Library, error) {
	var h windows.Handle
	addr := reflect.ValueOf(openSelf).Pointer()
	err := windows.GetModuleHandleEx(
		windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS|windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
		(*uint16)(unsafe.Pointer(addr)),
		&h,
	)
	if err != nil {
		return nil, err
	}
	return &module{h: h}, nil
}

func (m *module) Proc(name string) (uintptr, error) {
	return windows.GetProcAddress(m.h, name)
}

func (m *module) Close() error {
	if !m.owned || m.h == 0 {
		return nil
	}
	err := windows.FreeLibrary(m.h)
	m.h = 0
	return err
}
