package ui

// ANSI accessors for the active theme. Each returns an empty string when
// colors are disabled.

func ColorReset() string   { return GetCurrentTheme().Reset }
func ColorRed() string     { return GetCurrentTheme().Error }
func ColorGreen() string   { return GetCurrentTheme().Success }
func ColorYellow() string  { return GetCurrentTheme().Warning }
func ColorBlue() string    { return GetCurrentTheme().Primary }
func ColorMagenta() string { return GetCurrentTheme().Info }
func ColorCyan() string    { return GetCurrentTheme().Secondary }
func ColorBold() string    { return GetCurrentTheme().Bold }
