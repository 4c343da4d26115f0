package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator questions with defaults.
//
// When Interactive is false every method returns its default without
// touching In or Out. Tests construct the struct directly with buffers;
// production code uses New.
type Prompter struct {
	// In is the input stream answers are read from.
	In io.Reader

	// Out is the stream prompts are written to.
	Out io.Writer

	// Interactive reports whether a human is attached to In.
	Interactive bool

	// AssumeYes answers every Confirm with true without asking.
	// Set by the --yes flag.
	AssumeYes bool

	// reader buffers In across prompts. A fresh bufio.Reader per question
	// would swallow input buffered ahead of the answer being read.
	reader *bufio.Reader
}

// New creates a Prompter wired to the process's stdin and stderr.
// Interactivity is detected by checking whether stdin is a terminal.
func New() *Prompter {
	return &Prompter{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Confirm asks a yes/no question. AssumeYes short-circuits to true without
// asking. The empty answer and EOF both resolve to
// defaultYes; only an explicit "y"/"yes" (any case) resolves to true when
// defaultYes is false, and only an explicit "n"/"no" resolves to false when
// defaultYes is true.
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if !p.Interactive {
		return defaultYes, nil
	}

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.Out, "%s %s ", message, hint)

	response, err := p.readLine()
	if err != nil {
		if err == io.EOF {
			fmt.Fprintln(p.Out)
			return defaultYes, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	response = strings.ToLower(response)
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// String asks for a free-form value. The empty answer and EOF both resolve
// to defaultValue.
func (p *Prompter) String(message, defaultValue string) (string, error) {
	if !p.Interactive {
		return defaultValue, nil
	}

	if defaultValue != "" {
		fmt.Fprintf(p.Out, "%s [%s]: ", message, defaultValue)
	} else {
		fmt.Fprintf(p.Out, "%s: ", message)
	}

	response, err := p.readLine()
	if err != nil {
		if err == io.EOF {
			fmt.Fprintln(p.Out)
			return defaultValue, nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	if response == "" {
		return defaultValue, nil
	}
	return response, nil
}

// readLine reads a single trimmed line from In. A final line without a
// trailing newline is still returned (bufio reports it alongside io.EOF).
func (p *Prompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
