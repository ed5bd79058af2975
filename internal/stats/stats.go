// Package stats computes win/loss/draw aggregates and percentages over
// matchup records.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"matchups/internal/core"
)

// Summary is the combined tally of one or more records
type Summary struct {
	Wins   int
	Losses int
	Draws  int
}

// Percentages holds rounded win/loss/draw rates in percent
type Percentages struct {
	Win  float64
	Loss float64
	Draw float64
}

// Of returns the tally of a single record
func Of(r core.Record) Summary {
	return Summary{Wins: r.Wins, Losses: r.Losses, Draws: r.Draws}
}

// Sum adds up every record
func Sum(records ...core.Record) Summary {
	var s Summary
	for _, r := range records {
		s.Wins += r.Wins
		s.Losses += r.Losses
		s.Draws += r.Draws
	}
	return s
}

func (s Summary) Total() int {
	return s.Wins + s.Losses + s.Draws
}

// Percentages returns the rounded rates. ok is false when no games were
// recorded and nothing was computed.
func (s Summary) Percentages() (p Percentages, ok bool) {
	total := s.Total()
	if total == 0 {
		return Percentages{}, false
	}
	return Percentages{
		Win:  Round2(percent(s.Wins, total)),
		Loss: Round2(percent(s.Losses, total)),
		Draw: Round2(percent(s.Draws, total)),
	}, true
}

// Raw returns the unrounded rates, or false with no games
func (s Summary) Raw() (p Percentages, ok bool) {
	total := s.Total()
	if total == 0 {
		return Percentages{}, false
	}
	return Percentages{
		Win:  percent(s.Wins, total),
		Loss: percent(s.Losses, total),
		Draw: percent(s.Draws, total),
	}, true
}

func percent(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

// Round2 rounds x to two decimal places, half to even on the exact binary
// value of x.
func Round2(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return v
}

// FormatPercent renders a rate in shortest form with at least one decimal
// digit: 75.0, 33.33, 12.5.
func FormatPercent(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (s Summary) tally() string {
	return fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Draws)
}

func (p Percentages) String() string {
	return fmt.Sprintf("(%s, %s, %s)", FormatPercent(p.Win), FormatPercent(p.Loss), FormatPercent(p.Draw))
}

// RecordLine formats the stats of one opponent
func RecordLine(opponent string, r core.Record) string {
	s := Of(r)
	p, ok := s.Percentages()
	if !ok {
		return fmt.Sprintf("No games recorded against %s", opponent)
	}
	return fmt.Sprintf("%s: %s, %s", opponent, s.tally(), p)
}

// OverallLine formats the combined stats of a deck's displayed opponents
func OverallLine(deck string, s Summary) string {
	p, ok := s.Percentages()
	if !ok {
		return fmt.Sprintf("No games recorded for %s", deck)
	}
	return fmt.Sprintf("Overall stats for %s: %s, %s", deck, s.tally(), p)
}
