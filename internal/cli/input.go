package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ScannerReader reads lines from any reader; used for pipes and tests
type ScannerReader struct {
	scanner *bufio.Scanner
	output  io.Writer
}

func NewScannerReader(input io.Reader, output io.Writer) *ScannerReader {
	return &ScannerReader{
		scanner: bufio.NewScanner(input),
		output:  output,
	}
}

// ReadLine returns io.EOF once input is exhausted
func (s *ScannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.output, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(s.scanner.Text(), "\r"), nil
}

// ReadlineReader reads from an interactive terminal with line editing and
// optional history
type ReadlineReader struct {
	rl *readline.Instance
}

func NewReadlineReader(historyFile string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine maps Ctrl-C to io.EOF so both end the session the same way
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
