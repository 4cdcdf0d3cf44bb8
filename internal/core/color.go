package core

// Color is a foreground color for a screen cell.
// The platform maps it to ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPink
	ColorGray
	ColorBrightWhite
)
