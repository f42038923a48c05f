package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/pkg/errs"
)

// out writes formatted text to w.
func out(w *os.File, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln writes a line to w.
func outln(w *os.File, args ...any) {
	fmt.Fprintln(w, args...)
}

// promptHiddenLine prompts for a line of input with echo disabled, the way
// a passphrase or mnemonic phrase should be entered at a terminal.
func promptHiddenLine(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	if !term.IsTerminal(syscall.Stdin) {
		return promptVisibleLine("")
	}

	line, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

// promptVisibleLine reads a single line from stdin, echoed.
func promptVisibleLine(prompt string) ([]byte, error) {
	if prompt != "" {
		out(os.Stderr, "%s", prompt)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// promptMnemonicFn prompts for a mnemonic phrase, hidden when attached to a
// terminal so shoulder-surfing a secret share is harder.
var promptMnemonicFn = func() (string, error) {
	line, err := promptHiddenLine("Enter mnemonic phrase: ")
	if err != nil {
		return "", err
	}
	defer secure.Zero(line)
	return string(line), nil
}

// promptSessionIDFn prompts for an optional session identifier used to derive
// deterministic share coefficients.
var promptSessionIDFn = func() (string, error) {
	line, err := promptVisibleLine("Session ID (optional, press enter for none): ")
	if err != nil {
		return "", err
	}
	return string(line), nil
}

// promptConfirmFn asks the user to confirm a yes/no question.
var promptConfirmFn = func(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// parseShareLine parses the wire form `{index}: {w1 w2 ...}` into an index
// and the space-separated words that follow the colon.
func parseShareLine(line string) (int, []string, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return 0, nil, errs.WithDetails(errs.ErrInvalidShareIndex, map[string]string{"line": line})
	}

	index, err := strconv.Atoi(strings.TrimSpace(line[:colon]))
	if err != nil {
		return 0, nil, errs.WithDetails(errs.ErrInvalidShareIndex, map[string]string{"line": line})
	}
	if index < 1 || index > 255 {
		return 0, nil, errs.WithDetails(errs.ErrInvalidShareIndex, map[string]string{"index": strconv.Itoa(index)})
	}

	words := strings.Fields(line[colon+1:])
	return index, words, nil
}
