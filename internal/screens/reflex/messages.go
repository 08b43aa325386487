package reflex

// armMsg fires when a round's random delay has elapsed. The id pins it to
// the screen instance that scheduled it and the generation to the round;
// messages from popped instances and stale rounds are dropped.
type armMsg struct {
	id  uint64
	gen int
}

// pauseMsg fires after the short result/too-early display period.
type pauseMsg struct {
	id uint64
}
