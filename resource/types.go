package resource

import "fmt"

// Handle is a 32-bit token for a value in a Table. The low bits select a
// slot and the high bits count how often that slot was reused, so a
// handle that outlived its value never resolves to a newer one.
// Handle 0 is never issued and bit 31 is always clear, leaving it free
// for callers that tag handles (Direct3D 8 vertex shader handles do).
type Handle uint32

const (
	indexBits = 20
	indexMask = 1<<indexBits - 1
	genBits   = 11
	genMask   = 1<<genBits - 1

	// MaxLive is the most values a table holds at once.
	MaxLive = indexMask
)

func makeHandle(index, gen uint32) Handle {
	return Handle(gen&genMask<<indexBits | index&indexMask)
}

func (h Handle) index() uint32 { return uint32(h) & indexMask }
func (h Handle) gen() uint32   { return uint32(h) >> indexBits & genMask }

// String formats the handle as slot and generation.
func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.index(), h.gen())
}

// EventType is the kind of lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	}
	return "unknown"
}

// Event reports a value entering or leaving a table.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives lifecycle events synchronously, outside table locks.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is implemented by values that own something outside the table,
// such as a real interface pointer, and must let go of it when removed.
type Dropper interface {
	Drop()
}
