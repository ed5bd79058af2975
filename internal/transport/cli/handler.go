package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"matchups/internal/cli"
	"matchups/internal/core"
	"matchups/internal/stats"
	"matchups/internal/transport"
)

// ErrInputClosed is returned by Run when input ends before the user quits.
// Nothing is saved in that case.
var ErrInputClosed = errors.New("input closed before quit, changes were not saved")

// State is the menu the session is currently showing
type State int

const (
	StateDecks State = iota
	StateOpponents
	StateStats
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDecks:
		return "decks"
	case StateOpponents:
		return "opponents"
	case StateStats:
		return "stats"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

var (
	deckCommands = []cli.Command{
		{Key: "q", Label: "Quit"},
		{Key: "n", Label: "New deck!"},
	}
	opponentCommands = []cli.Command{
		{Key: "b", Label: "Back"},
		{Key: "a", Label: "Print all stats"},
		{Key: "o", Label: "Print overall stats"},
		{Key: "fn", Label: "Filter by name"},
		{Key: "fs", Label: "Filter by speed"},
		{Key: "g", Label: "Remove filter"},
		{Key: "n", Label: "New opponent!"},
	}
	statCommands = []cli.Command{
		{Key: "b", Label: "Back"},
		{Key: "w", Label: "Add wins"},
		{Key: "l", Label: "Add losses"},
		{Key: "d", Label: "Add draws"},
	}
	countPrompts = map[core.Result]string{
		core.ResultWin:  "Congrats! How many wins to add? ",
		core.ResultLoss: "How many losses to add? ",
		core.ResultDraw: "...Really?  Ok, how many draws to add? ",
	}
)

const unrecognized = "Unrecognized command, please try again!"

// CLIHandler is the session controller: a three-state menu machine over
// the matchup service
type CLIHandler struct {
	svc      transport.Matchups
	view     transport.View
	state    State
	deck     string
	opponent string
	filter   core.Filter
	err      error
}

func New(svc transport.Matchups, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:   svc,
		view:  view,
		state: StateDecks,
	}
}

func (h *CLIHandler) State() State {
	return h.state
}

// Run shows menus and processes selections until the user quits or input
// ends. It returns nil after a successful save.
func (h *CLIHandler) Run() error {
	h.view.ShowWelcome()

	for h.state != StateDone {
		option, err := h.view.ShowMenu(h.menu())
		if err != nil {
			h.inputClosed(err)
			break
		}
		if !h.ProcessInput(option) {
			break
		}
	}
	return h.err
}

// ProcessInput handles one selected option. Returns false once the
// session is over.
func (h *CLIHandler) ProcessInput(option string) bool {
	switch h.state {
	case StateDecks:
		h.handleDecks(option)
	case StateOpponents:
		h.handleOpponents(option)
	case StateStats:
		h.handleStats(option)
	}
	return h.state != StateDone
}

func (h *CLIHandler) inputClosed(err error) {
	if !errors.Is(err, io.EOF) {
		log.Printf("Input error: %v", err)
	}
	h.err = ErrInputClosed
	h.state = StateDone
}

// ask reads a sub-prompt answer; false means input is gone
func (h *CLIHandler) ask(prompt string) (string, bool) {
	answer, err := h.view.Ask(prompt)
	if err != nil {
		h.inputClosed(err)
		return "", false
	}
	return answer, true
}

// listing is rebuilt on every call so indices follow the current order
func (h *CLIHandler) listing() core.View {
	switch h.state {
	case StateDecks:
		return h.svc.Decks()
	case StateOpponents:
		v, err := h.svc.Opponents(h.deck, h.filter)
		if err != nil {
			return core.View{}
		}
		return v
	default:
		return core.View{}
	}
}

func (h *CLIHandler) menu() cli.Menu {
	switch h.state {
	case StateOpponents:
		return cli.Menu{
			Banner:   fmt.Sprintf("Here are the opponents %s has faced:", h.deck),
			Entries:  h.listing().Entries(),
			Commands: opponentCommands,
		}
	case StateStats:
		m := cli.Menu{
			Banner:   fmt.Sprintf("Here are the stats against %s:", h.opponent),
			Commands: statCommands,
		}
		if rec, err := h.svc.Record(h.deck, h.opponent); err == nil {
			m.Lines = []string{stats.RecordLine(h.opponent, rec)}
		}
		return m
	default:
		return cli.Menu{
			Banner:   "Your decks:",
			Entries:  h.listing().Entries(),
			Commands: deckCommands,
		}
	}
}

func (h *CLIHandler) handleDecks(option string) {
	switch option {
	case "q":
		h.view.ShowGoodbye()
		if err := h.svc.Save(); err != nil {
			h.err = fmt.Errorf("failed to save matchups: %w", err)
		}
		h.state = StateDone

	case "n":
		name, ok := h.ask("What deck are you adding? ")
		if !ok {
			return
		}
		h.svc.AddDeck(name)
		h.view.ShowMessage(fmt.Sprintf("Deck %s added!", name))

	default:
		name, ok := h.listing().Lookup(option)
		if !ok {
			h.view.ShowError(unrecognized)
			return
		}
		h.deck = name
		h.filter = core.Filter{}
		h.state = StateOpponents
	}
}

func (h *CLIHandler) handleOpponents(option string) {
	switch option {
	case "b":
		h.view.ShowMessage(fmt.Sprintf("Done with %s, going back to main menu...", h.deck))
		h.deck = ""
		h.filter = core.Filter{}
		h.state = StateDecks

	case "n":
		h.handleNewOpponent()
		// Adding always returns to the unfiltered listing
		if h.state != StateDone {
			h.filter = core.Filter{}
		}

	case "a":
		h.printAllStats()

	case "o":
		h.printOverallStats()

	case "fn":
		text, ok := h.ask("What name filter would you like to apply? ")
		if !ok {
			return
		}
		h.filter = core.NameFilter(text)
		h.printOverallStats()
		h.view.ShowMessage(fmt.Sprintf("Filtered by %s", text))

	case "fs":
		speed, ok := h.ask("What speed decks would you like to see? ")
		if !ok {
			return
		}
		h.filter = core.SpeedFilter(speed)
		h.printOverallStats()
		h.view.ShowMessage(fmt.Sprintf("Showing %s decks", speed))

	case "g":
		h.filter = core.Filter{}
		h.view.ShowMessage("Reverted to general display")

	default:
		name, ok := h.listing().Lookup(option)
		if !ok {
			h.view.ShowError(unrecognized)
			return
		}
		h.opponent = name
		h.state = StateStats
	}
}

func (h *CLIHandler) handleNewOpponent() {
	name, ok := h.ask("What opponent are you adding? (hit ENTER to cancel) ")
	if !ok || name == "" {
		return
	}
	if h.svc.HasOpponent(h.deck, name) {
		h.view.ShowError(fmt.Sprintf("Opponent %s already exists!", name))
		return
	}

	speed, ok := h.ask(fmt.Sprintf("What speed is this opponent? (options are %s) ", speedOptions()))
	if !ok {
		return
	}
	if err := h.svc.AddOpponent(h.deck, name, speed); err != nil {
		h.view.ShowError(err.Error())
		return
	}
	h.view.ShowMessage(fmt.Sprintf("%s opponent %s added!", speed, name))
}

// speedOptions renders "Aggro, Midrange, Control, and Combo"
func speedOptions() string {
	n := len(core.Speeds)
	return strings.Join(core.Speeds[:n-1], ", ") + ", and " + core.Speeds[n-1]
}

func (h *CLIHandler) printAllStats() {
	h.view.ShowMessage(fmt.Sprintf("Here is your matchup spread for %s:", h.deck))
	for _, name := range h.listing().Names() {
		rec, err := h.svc.Record(h.deck, name)
		if err != nil {
			h.view.ShowError(err.Error())
			continue
		}
		h.view.ShowMessage(stats.RecordLine(name, rec))
	}
}

func (h *CLIHandler) printOverallStats() {
	sum, err := h.svc.Summary(h.deck, h.listing().Names())
	if err != nil {
		h.view.ShowError(err.Error())
		return
	}
	h.view.ShowMessage(stats.OverallLine(h.deck, sum))
}

func (h *CLIHandler) handleStats(option string) {
	var result core.Result
	switch option {
	case "b":
		h.opponent = ""
		h.state = StateOpponents
		return
	case "w":
		result = core.ResultWin
	case "l":
		result = core.ResultLoss
	case "d":
		result = core.ResultDraw
	default:
		h.view.ShowError(unrecognized)
		return
	}

	input, ok := h.ask(countPrompts[result])
	if !ok {
		return
	}
	n, err := parseCount(input)
	if err != nil {
		h.view.ShowError(fmt.Sprintf("Invalid count %q, please enter a whole number!", input))
		return
	}
	if _, err := h.svc.AddResults(h.deck, h.opponent, result, n); err != nil {
		h.view.ShowError(err.Error())
	}
}

// parseCount accepts an optionally signed integer surrounded by spaces
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidCount, s)
	}
	return n, nil
}
