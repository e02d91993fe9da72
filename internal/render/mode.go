// internal/render/mode.go
package render

import (
	"fmt"
	"html"
	"strings"
)

// Mode selects how output is decorated.
type Mode int

const (
	Color Mode = iota
	Plain
	HTML
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case HTML:
		return "html"
	}
	return "color"
}

// ParseMode accepts the mode names used on the command line and in the environment.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "color", "colour", "ansi":
		return Color, nil
	case "plain", "none", "colorless", "bland":
		return Plain, nil
	case "html", "browser":
		return HTML, nil
	}
	return Color, fmt.Errorf("unknown output mode %q", s)
}

type style int

const (
	stylePlayer style = iota
	styleAnswer
	styleCard
	styleIndex
	styleAxis1
	styleAxis2
	styleAxis3
)

var axisStyles = []style{styleAxis1, styleAxis2, styleAxis3}

var ansiCodes = map[style]string{
	stylePlayer: "\x1b[1;36m",
	styleAnswer: "\x1b[1;33m",
	styleCard:   "\x1b[1m",
	styleIndex:  "\x1b[33m",
	styleAxis1:  "\x1b[1;35m",
	styleAxis2:  "\x1b[1;32m",
	styleAxis3:  "\x1b[1;34m",
}

const ansiReset = "\x1b[0m"

var htmlStyles = map[style]string{
	stylePlayer: "color: cyan; font-weight: bold",
	styleAnswer: "color: yellow; font-weight: bold",
	styleCard:   "font-weight: bold",
	styleIndex:  "color: yellow",
	styleAxis1:  "color: magenta; font-weight: bold",
	styleAxis2:  "color: lime; font-weight: bold",
	styleAxis3:  "color: dodgerblue; font-weight: bold",
}

// paint decorates s according to the mode.
func paint(m Mode, s string, st style) string {
	switch m {
	case Plain:
		return s
	case HTML:
		return `<span style="` + htmlStyles[st] + `">` + html.EscapeString(s) + `</span>`
	}
	return ansiCodes[st] + s + ansiReset
}

// text makes undecorated output safe for the mode.
func text(m Mode, s string) string {
	if m == HTML {
		return html.EscapeString(s)
	}
	return s
}
