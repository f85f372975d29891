package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var ErrNotInteractive = errors.New("refusing to reset without confirmation: stdin is not a terminal (use --force)")

// Confirm prints warning and asks for a yes/no answer. Only "y" or "yes"
// proceeds; anything else, including EOF, declines.
func Confirm(in io.Reader, out io.Writer, warning string) (bool, error) {
	color.New(color.FgRed, color.Bold).Fprintln(out, warning)
	fmt.Fprint(out, "Do you really wish to run this command? [y/N] ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
