package styles

// Status symbols
const (
	SymbolOK     = "✓"
	SymbolFail   = "✗"
	SymbolWarn   = "⚠"
	SymbolBooted = "●"
)

// OK renders a passed check line.
func OK(text string) string {
	return SuccessStyle.Render(SymbolOK) + " " + text
}

// Fail renders a failed check line.
func Fail(text string) string {
	return ErrorStyle.Render(SymbolFail) + " " + text
}

// Warn renders a check line that passed with a caveat.
func Warn(text string) string {
	return WarningStyle.Render(SymbolWarn) + " " + text
}
