package cli

import (
	"fmt"
	"io"
	"strings"

	"matchups/internal/core"
)

const (
	sectionRule = "=========="
	promptWidth = 69
	optionText  = "Select an option: "
)

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeColor ColorTheme = "color"
)

type themeColors struct {
	banner  string
	index   string
	command string
	err     string
	prompt  string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeColor: {
		banner:  "\033[36m", // Cyan
		index:   "\033[37m", // White
		command: "\033[33m", // Yellow
		err:     "\033[31m", // Red
		prompt:  "\033[33m", // Yellow
		reset:   "\033[0m",
	},
}

// LineReader reads one line of user input after showing prompt
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Command is a fixed menu entry such as "q: Quit"
type Command struct {
	Key   string
	Label string
}

// Menu is everything one menu screen prints before asking for an option
type Menu struct {
	Banner   string
	Entries  []core.Entry
	Lines    []string // free text shown instead of, or after, entries
	Commands []Command
}

type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme
}

// New reads lines from input with a plain scanner
func New(input io.Reader, output io.Writer) *CLI {
	return NewWithReader(NewScannerReader(input, output), output)
}

// NewWithReader uses a caller-supplied reader, e.g. readline on a terminal
func NewWithReader(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, color)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) colors() themeColors {
	return themes[c.theme]
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

// ShowError prints a user-facing complaint in the error colour
func (c *CLI) ShowError(msg string) {
	tc := c.colors()
	c.ShowMessage(tc.err + msg + tc.reset)
}

// Ask shows prompt and returns the raw answer without its line ending
func (c *CLI) Ask(prompt string) (string, error) {
	return c.input.ReadLine(prompt)
}

// ShowWelcome prints the greeting shown once per session
func (c *CLI) ShowWelcome() {
	tc := c.colors()
	c.ShowMessage("")
	c.ShowMessage(tc.banner + "Welcome to HS_Matchups!" + tc.reset)
	c.ShowMessage("")
}

func (c *CLI) ShowGoodbye() {
	c.ShowMessage("Good luck out there!")
}

// ShowMenu prints a menu and reads the selected option
func (c *CLI) ShowMenu(m Menu) (string, error) {
	tc := c.colors()
	var sb strings.Builder

	sb.WriteString(sectionRule + "\n")
	sb.WriteString(tc.banner + m.Banner + tc.reset + "\n")
	for _, e := range m.Entries {
		sb.WriteString(fmt.Sprintf("%s%s%s: %s\n", tc.index, e.Index, tc.reset, e.Name))
	}
	for _, line := range m.Lines {
		sb.WriteString(line + "\n")
	}
	sb.WriteString(sectionRule + "\n")
	sb.WriteString("Other options:\n")
	for _, cmd := range m.Commands {
		sb.WriteString(fmt.Sprintf("%s%s%s: %s\n", tc.command, cmd.Key, tc.reset, cmd.Label))
	}
	sb.WriteString(sectionRule)

	c.ShowMessage(sb.String())
	return c.selectOption()
}

func (c *CLI) selectOption() (string, error) {
	tc := c.colors()
	rule := strings.Repeat("=", promptWidth)

	c.ShowMessage(rule)
	option, err := c.input.ReadLine(tc.prompt + optionText + tc.reset)
	if err != nil {
		return "", err
	}
	c.ShowMessage(rule)
	return option, nil
}
