// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the grid, the backends and the
// components that draw into the grid.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// The sixteen console palette colors.
var (
	ColorBlack        = ColorFromIndex(0)
	ColorRed          = ColorFromIndex(1)
	ColorGreen        = ColorFromIndex(2)
	ColorYellow       = ColorFromIndex(3)
	ColorBlue         = ColorFromIndex(4)
	ColorMagenta      = ColorFromIndex(5)
	ColorCyan         = ColorFromIndex(6)
	ColorLightGray    = ColorFromIndex(7)
	ColorGray         = ColorFromIndex(8)
	ColorLightRed     = ColorFromIndex(9)
	ColorLightGreen   = ColorFromIndex(10)
	ColorLightYellow  = ColorFromIndex(11)
	ColorLightBlue    = ColorFromIndex(12)
	ColorLightMagenta = ColorFromIndex(13)
	ColorLightCyan    = ColorFromIndex(14)
	ColorWhite        = ColorFromIndex(15)
)

var namedColors = map[string]Color{
	"default":       ColorDefault,
	"black":         ColorBlack,
	"red":           ColorRed,
	"green":         ColorGreen,
	"yellow":        ColorYellow,
	"blue":          ColorBlue,
	"magenta":       ColorMagenta,
	"cyan":          ColorCyan,
	"lightgray":     ColorLightGray,
	"gray":          ColorGray,
	"lightred":      ColorLightRed,
	"lightgreen":    ColorLightGreen,
	"lightyellow":   ColorLightYellow,
	"lightblue":     ColorLightBlue,
	"lightmagenta":  ColorLightMagenta,
	"lightcyan":     ColorLightCyan,
	"white":         ColorWhite,
	"light_gray":    ColorLightGray,
	"light_blue":    ColorLightBlue,
	"light_cyan":    ColorLightCyan,
	"light_red":     ColorLightRed,
	"light_green":   ColorLightGreen,
	"light_yellow":  ColorLightYellow,
	"light_magenta": ColorLightMagenta,
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string ("#rgb" or "#rrggbb").
func ColorFromHex(hex string) (Color, error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 3 && len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ParseColor accepts a palette name ("light_blue", "white") or a hex string.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if name == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	return ColorFromHex(name)
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes two true colors in Lab space.
// Indexed and default colors cannot be mixed; the nearer endpoint wins.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, amount).Clamped().RGB255()
	return ColorFromRGB(r, g, bl)
}

// Style is the foreground/background pair of a cell.
type Style struct {
	Foreground Color
	Background Color
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style from a foreground and background color.
func NewStyle(fg, bg Color) Style {
	return Style{Foreground: fg, Background: bg}
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) && s.Background.Equals(other.Background)
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	// A value of 0 indicates a continuation cell (right half of a wide rune).
	Rune rune

	// Width is the display width of this cell: 0 for continuation cells,
	// 1 for normal runes, 2 for wide runes.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// BlankCell returns a space cell with the given background.
func BlankCell(bg Color) Cell {
	return Cell{Rune: ' ', Width: 1, Style: Style{Foreground: ColorDefault, Background: bg}}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: DisplayWidth(r), Style: style}
}

// ContinuationCell returns the right half of a wide rune.
func ContinuationCell(style Style) Cell {
	return Cell{Rune: 0, Width: 0, Style: style}
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equals(other.Style)
}

// wideRanges lists the code point ranges drawn two cells wide.
var wideRanges = [...][2]rune{
	{0x2E80, 0x9FFF},   // CJK radicals, kana, bopomofo, hangul compat, unified ideographs
	{0xAC00, 0xD7FF},   // hangul syllables and jamo extended-B
	{0xF900, 0xFAFF},   // CJK compatibility ideographs
	{0xFE10, 0xFE1F},   // vertical forms
	{0xFE30, 0xFE6F},   // CJK compatibility forms, small form variants
	{0xFF00, 0xFF60},   // fullwidth forms
	{0x1F300, 0x1FAFF}, // pictographs and emoji
	{0x20000, 0x2FA1F}, // supplementary ideographic plane
}

// DisplayWidth returns the number of cells r occupies: 2 for wide runes,
// 1 otherwise.
func DisplayWidth(r rune) int {
	if r < wideRanges[0][0] {
		return 1
	}
	for _, rng := range wideRanges {
		if r < rng[0] {
			return 1
		}
		if r <= rng[1] {
			return 2
		}
	}
	return 1
}

// RunesWidth returns the summed display width of runes.
func RunesWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += DisplayWidth(r)
	}
	return w
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
