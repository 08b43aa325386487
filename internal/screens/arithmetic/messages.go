package arithmetic

import "time"

// tickMsg is sent every second to advance the countdown. The id pins it to
// the screen instance and the generation to the session that scheduled it,
// so a tick armed before a restart (or by a popped instance) can never
// drain the new session's clock.
type tickMsg struct {
	id  uint64
	gen int
	t   time.Time
}

// feedbackClearMsg removes the ✓/✗ verdict mark after a short flash.
type feedbackClearMsg struct {
	id  uint64
	seq int
}
