package doctor

import (
	"fmt"
	"io"
	"slices"

	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/ui/styles"
)

// fixIssues applies the profile fixes and saves the result once.
func fixIssues(w io.Writer, path string, p profile.Profile, issues []Issue) error {
	var fixed int
	for _, issue := range issues {
		switch issue.FixAction {
		case FixResetProfile:
			p = profile.Profile{}
			fmt.Fprintln(w, "  "+styles.OK("Reset "+issue.Key))
			fixed++
		case FixClearDefault:
			p.DevTeam = ""
			fmt.Fprintln(w, "  "+styles.OK(fmt.Sprintf("Cleared default team %q", issue.Key)))
			fixed++
		case FixDropInvalid:
			p.DevTeams = slices.DeleteFunc(p.DevTeams, func(id string) bool { return id == issue.Key })
			fmt.Fprintln(w, "  "+styles.OK(fmt.Sprintf("Forgot team %q", issue.Key)))
			fixed++
		}
	}
	if fixed == 0 {
		return nil
	}

	if err := profile.Save(path, p); err != nil {
		fmt.Fprintln(w, "  "+styles.Fail(fmt.Sprintf("Failed to save %s: %v", path, err)))
		return fmt.Errorf("save profile: %w", err)
	}
	fmt.Fprintf(w, "\nFixed %d issue(s)\n", fixed)
	return nil
}
