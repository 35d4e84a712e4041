package core

import "strings"

// Color represents a foreground color for a screen cell.
// The renderer maps each value to an ANSI color code.
type Color uint8

// Palette colors. Config files refer to them by name.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	colorCount
)

var colorNames = [colorCount]string{
	"default",
	"red",
	"green",
	"yellow",
	"blue",
	"magenta",
	"cyan",
	"white",
	"bright_red",
	"bright_green",
	"bright_yellow",
	"bright_blue",
	"bright_magenta",
	"bright_cyan",
	"bright_white",
	"orange",
	"gray",
}

// String returns the config name of the color.
func (c Color) String() string {
	if c >= colorCount {
		return "default"
	}
	return colorNames[c]
}

// ParseColor resolves a config color name (case-insensitive, "-" or "_" separated).
func ParseColor(name string) (Color, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "grey" {
		key = "gray"
	}
	for i, n := range colorNames {
		if n == key {
			return Color(i), true
		}
	}
	return ColorDefault, false
}
