package config

import (
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"default", "dracula", "nord", "gruvbox", "catppuccin", "none"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

func (c *Config) validate() error {
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
