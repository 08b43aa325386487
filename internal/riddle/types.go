package riddle

// Riddle is a single logic riddle with its answer and a hint, all in Japanese.
type Riddle struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Hint     string `json:"hint"`
}
