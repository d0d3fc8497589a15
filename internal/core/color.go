package core

// Color is the foreground color of a screen cell. The TUI layer maps each
// value to an ANSI 256-color code.
type Color uint8

// The base colors come first, then their bright variants in the same order.
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
)

// Bright returns the bright variant of a base color. Every other color is
// returned unchanged.
func (c Color) Bright() Color {
	if c >= ColorRed && c <= ColorWhite {
		return c + ColorBrightRed - ColorRed
	}
	return c
}

// Dim returns the base variant of a bright color. Every other color is
// returned unchanged.
func (c Color) Dim() Color {
	if c >= ColorBrightRed && c <= ColorBrightWhite {
		return c - (ColorBrightRed - ColorRed)
	}
	return c
}
