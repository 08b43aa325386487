package memory

// playMsg steps the sequence playback animation: element idx lights up
// (on=true) or goes dark (on=false). The id pins each step to the screen
// instance and the generation to the playback run that scheduled it.
type playMsg struct {
	id  uint64
	gen int
	idx int
	on  bool
}

// openMsg opens the grid for input after the last playback element.
type openMsg struct {
	id  uint64
	gen int
}

// nextLevelMsg starts the next level's playback after the rest pause.
type nextLevelMsg struct {
	id  uint64
	gen int
}
