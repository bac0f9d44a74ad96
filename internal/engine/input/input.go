// Package input turns SDL2 events into viewer input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/procmesh/internal/animation"
)

// EventType classifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDown
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Button uint8
	Wheel  float32
}

// Input collects one frame of events and tracks the pointer.
type Input struct {
	events []Event

	width, height  int
	mouseX, mouseY int32
	dragX, dragY   float32
	dragging       bool
	clicked        bool
}

// New creates a new input handler for a viewport of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0
	i.clicked = false

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.width, i.height = int(e.Data1), int(e.Data2)
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  i.width,
					Height: i.height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			}

		case *sdl.MouseMotionEvent:
			i.mouseX, i.mouseY = e.X, e.Y
			if i.dragging {
				i.dragX += float32(e.XRel)
				i.dragY += float32(e.YRel)
			}

		case *sdl.MouseButtonEvent:
			i.mouseX, i.mouseY = e.X, e.Y
			if e.Type == sdl.MOUSEBUTTONDOWN {
				switch e.Button {
				case sdl.BUTTON_LEFT:
					i.clicked = true
				case sdl.BUTTON_RIGHT:
					i.dragging = true
				}
				i.events = append(i.events, Event{Type: EventMouseDown, Button: e.Button})
			} else if e.Button == sdl.BUTTON_RIGHT {
				i.dragging = false
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: float32(e.Y)})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Pointer returns the pointer position normalized to the viewport and
// whether the left button was pressed this frame.
func (i *Input) Pointer() animation.Pointer {
	p := animation.Pointer{Clicked: i.clicked}
	if i.width > 0 {
		p.X = float32(i.mouseX) / float32(i.width)
	}
	if i.height > 0 {
		p.Y = float32(i.mouseY) / float32(i.height)
	}
	return p
}

// Drag returns the right-button drag distance in pixels this frame.
func (i *Input) Drag() (dx, dy float32) {
	return i.dragX, i.dragY
}

// Wheel returns the accumulated scroll this frame.
func (i *Input) Wheel() float32 {
	var w float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			w += e.Wheel
		}
	}
	return w
}
