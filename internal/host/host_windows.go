//go:build windows

package host

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"
)

func moduleFileName(h windows.Handle) string {
	buf := make([]uint16, windows.MAX_LONG_PATH)
	n, err := windows.GetModuleFileName(h, &buf[0], uint32(len(buf)))
	if err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// modulePath names the DLL containing this code, not the host executable.
func modulePath() string {
	var h windows.Handle
	addr := reflect.ValueOf(modulePath).Pointer()
	err := windows.GetModuleHandleEx(
		windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS|windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
		(*uint16)(unsafe.Pointer(addr)),
		&h,
	)
	if err != nil {
		return ""
	}
	return moduleFileName(h)
}

func processPath() string {
	return moduleFileName(0)
}
