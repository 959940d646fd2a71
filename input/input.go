// Package input defines the logical keys and platform events the game loop
// consumes. Backends translate their native key codes into these.
package input

// Key is a logical game key.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyStrafeLeft
	KeyStrafeRight
	KeyBrake
	KeyFire

	KeyCount
)

var keyNames = [KeyCount]string{
	KeyUp:          "up",
	KeyDown:        "down",
	KeyLeft:        "left",
	KeyRight:       "right",
	KeyStrafeLeft:  "strafe_left",
	KeyStrafeRight: "strafe_right",
	KeyBrake:       "brake",
	KeyFire:        "fire",
}

func (k Key) String() string {
	if k >= KeyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Snapshot is the pressed state of every logical key for one frame.
type Snapshot [KeyCount]bool

// Pressed reports whether k is held. Out-of-range keys are never pressed.
func (s Snapshot) Pressed(k Key) bool {
	if k >= KeyCount {
		return false
	}
	return s[k]
}

// With returns a copy of s with the given keys held.
func (s Snapshot) With(keys ...Key) Snapshot {
	for _, k := range keys {
		if k < KeyCount {
			s[k] = true
		}
	}
	return s
}

// EventType identifies a discrete platform event.
type EventType uint8

const (
	EventNone EventType = iota
	EventQuit
	EventResize
)

// Event is a discrete platform event drained once per frame.
type Event struct {
	Type EventType

	// Width and Height are set for EventResize
	Width, Height int
}
