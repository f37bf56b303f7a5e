package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type colorMode uint8

const (
	colorAuto colorMode = iota
	colorOn
	colorOff
)

func parseColorMode(s string) (colorMode, error) {
	switch s {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	}
	return colorAuto, fmt.Errorf("unknown color mode %q (expected auto|on|off)", s)
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := parseColorMode(mustString(cmd.Root().PersistentFlags(), "color"))
	if err != nil {
		return false
	}
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) || isatty.IsCygwinTerminal(f.Fd()) //nolint:gosec // fd fits in int
}

// terminalWidth returns the width used to clip source lines, 0 when f is not
// a terminal. Widths above 255 are not clipped.
func terminalWidth(f *os.File) uint8 {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil || w <= 0 || w > 255 {
		return 0
	}
	return uint8(w) //nolint:gosec // checked above
}

func mustString(fs *pflag.FlagSet, name string) string {
	s, err := fs.GetString(name)
	if err != nil {
		return ""
	}
	return s
}
