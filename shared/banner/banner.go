// Package banner draws the title shown at the start of interactive runs.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const colorEnv = "AWS_INVENTORY_BANNER_COLOR"

const reset = "\x1b[0m"

var palette = map[string]string{
	"orange": "\x1b[38;2;255;153;0m",
	"yellow": "\x1b[38;2;255;214;0m",
	"blue":   "\x1b[38;2;0;113;197m",
	"green":  "\x1b[38;2;30;215;96m",
	"purple": "\x1b[38;2;145;70;255m",
	"red":    "\x1b[38;2;228;0;43m",
}

const (
	defaultColor        = "orange"
	blueBackgroundColor = "yellow"
)

// DrawBannerTitle prints the title to stderr when it is a terminal.
func DrawBannerTitle(version string) {
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	width := 80
	if w, _, err := term.GetSize(fd); err == nil {
		width = w
	}

	Draw(os.Stderr, version, width, titleColor(os.Getenv(colorEnv), isBlueBackground()))
}

// Draw writes the framed title to w, centered in width columns.
func Draw(w io.Writer, version string, width int, color string) {
	fmt.Fprint(w, color)
	for _, line := range titleLines(version) {
		if pad := (width - utf8.RuneCountInString(line)) / 2; pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprint(w, reset)
}

func titleLines(version string) []string {
	body := []string{
		"aws-inventory " + version,
		"VPCs, resources and RDS across accounts",
	}

	inner := 0
	for _, l := range body {
		inner = max(inner, utf8.RuneCountInString(l))
	}
	inner += 4

	lines := []string{"╭" + strings.Repeat("─", inner) + "╮"}
	for _, l := range body {
		lines = append(lines, "│  "+l+strings.Repeat(" ", inner-2-utf8.RuneCountInString(l))+"│")
	}
	return append(lines, "╰"+strings.Repeat("─", inner)+"╯")
}

// titleColor resolves the escape sequence from an override name, falling back
// to a color readable on the detected background.
func titleColor(override string, blueBackground bool) string {
	if c, ok := palette[strings.ToLower(strings.TrimSpace(override))]; ok {
		return c
	}
	if blueBackground {
		return palette[blueBackgroundColor]
	}
	return palette[defaultColor]
}
