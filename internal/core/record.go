package core

// Record is the win/loss/draw tally of one deck against one opponent
type Record struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
	Speed  string `json:"speed"`
}

// NewRecord returns a zeroed record with the given speed label
func NewRecord(speed string) *Record {
	return &Record{Speed: speed}
}

// Add adds n to the counter for result. n may be negative.
func (r *Record) Add(result Result, n int) {
	switch result {
	case ResultWin:
		r.Wins += n
	case ResultLoss:
		r.Losses += n
	case ResultDraw:
		r.Draws += n
	}
}

// Count returns the counter for result
func (r Record) Count(result Result) int {
	switch result {
	case ResultWin:
		return r.Wins
	case ResultLoss:
		return r.Losses
	case ResultDraw:
		return r.Draws
	default:
		return 0
	}
}

// Total returns the number of games played
func (r Record) Total() int {
	return r.Wins + r.Losses + r.Draws
}
