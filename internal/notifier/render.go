package notifier

import (
	"fmt"

	"hhnotifier/internal/window"
)

// Renderer produces the three message bodies. It is pure over (role,
// window, clock) and performs no I/O. Timestamps use Discord's dynamic
// tokens: <t:..:R> renders a relative countdown, <t:..:t> a local time.
type Renderer struct {
	RoleID uint64
	Window window.Window
	Now    window.Clock
}

// BeforeEvent is the countdown shown while the window is closed.
func (r Renderer) BeforeEvent() string {
	s := r.Window.NextStart(r.Now()).Unix()
	return fmt.Sprintf("Happy Hour starts <t:%d:R> at <t:%d:t>", s, s)
}

// DuringEvent is the countdown shown while the window is open.
func (r Renderer) DuringEvent() string {
	e := r.Window.NextEnd(r.Now()).Unix()
	return fmt.Sprintf("Happy Hour ends <t:%d:R> at <t:%d:t>", e, e)
}

// Notify is the role-mention announcement posted at window open.
func (r Renderer) Notify() string {
	return fmt.Sprintf("<@&%d> Happy Hour!", r.RoleID)
}

// Info picks the countdown matching the current side of the window.
func (r Renderer) Info() string {
	if r.Window.InWindow(r.Now()) {
		return r.DuringEvent()
	}
	return r.BeforeEvent()
}
