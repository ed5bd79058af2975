package core

// Result is one of the outcomes a stat record counts
type Result int

const (
	ResultWin Result = iota + 1
	ResultLoss
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "wins"
	case ResultLoss:
		return "losses"
	case ResultDraw:
		return "draws"
	default:
		return "unknown"
	}
}

// ParseResult maps a journal/result name back to its Result
func ParseResult(s string) (Result, bool) {
	switch s {
	case "wins":
		return ResultWin, true
	case "losses":
		return ResultLoss, true
	case "draws":
		return ResultDraw, true
	default:
		return 0, false
	}
}

// Speed labels offered when adding an opponent. Any string is accepted.
const (
	SpeedAggro    = "Aggro"
	SpeedMidrange = "Midrange"
	SpeedControl  = "Control"
	SpeedCombo    = "Combo"
)

var Speeds = []string{SpeedAggro, SpeedMidrange, SpeedControl, SpeedCombo}
