package comtest

import (
	"testing"

	"github.com/wippyai/dxshim/com"
)

func TestObject_ReleaseReachesHandler(t *testing.T) {
	w := NewWorld()
	o := w.New()
	var seen int32
	o.On(com.SlotRelease, func([]uintptr) uintptr {
		seen = o.Refs()
		return 0
	})

	o.AddRef()
	if got := o.Release(); got != 1 {
		t.Fatalf("Release = %d", got)
	}
	if seen != 1 {
		t.Fatalf("handler saw refs %d, want the decremented count", seen)
	}
	if o.Releases() != 1 || len(o.Calls(com.SlotRelease)) != 1 {
		t.Fatalf("releases %d, calls %d", o.Releases(), len(o.Calls(com.SlotRelease)))
	}
}

func TestObject_SlotHandlerOverrides(t *testing.T) {
	o := NewWorld().New()
	o.On(com.SlotRelease, func(args []uintptr) uintptr { return 99 })

	if got := o.Call(com.SlotRelease); got != 99 {
		t.Fatalf("Call = %d", got)
	}
	if o.Releases() != 0 {
		t.Fatal("handled slot call touched the fake count")
	}
}
