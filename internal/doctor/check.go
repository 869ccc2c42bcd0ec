package doctor

import (
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/team"
	"github.com/raphi011/runios/internal/xcode"
)

// Tool is an external program runios calls.
type Tool struct {
	Name     string
	Purpose  string
	Required bool
	// Path is checked with os.Stat instead of a PATH lookup when set.
	Path string
}

// Tools lists every external program, required ones first.
var Tools = []Tool{
	{Name: "xcodebuild", Purpose: "builds the app", Required: true},
	{Name: "xcrun", Purpose: "lists, boots and installs on simulators", Required: true},
	{Name: "PlistBuddy", Purpose: "reads the bundle identifier", Required: true, Path: xcode.PlistBuddy},
	{Name: "xcpretty", Purpose: "formats the build log"},
	{Name: "ios-deploy", Purpose: "installs on connected devices"},
}

// checkTools reports missing tools. found reports whether a name is on PATH.
func checkTools(tools []Tool, found func(string) bool) (ok []Tool, issues []Issue) {
	for _, t := range tools {
		present := false
		if t.Path != "" {
			_, err := os.Stat(t.Path)
			present = err == nil
		} else {
			present = found(t.Name)
		}
		if present {
			ok = append(ok, t)
			continue
		}

		issue := Issue{
			Key:         t.Name,
			Description: fmt.Sprintf("not found, runios uses it to %s", t.Purpose),
			Category:    CategoryTools,
			Severity:    SeverityWarn,
		}
		if t.Required {
			issue.Severity = SeverityError
		}
		issues = append(issues, issue)
	}
	return ok, issues
}

// checkProfile loads the cache at path and reports what is wrong with it.
// A missing file is fine: it is created on the first save.
func checkProfile(path string) (profile.Profile, []Issue) {
	p, err := profile.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return profile.Profile{}, nil
	}
	if err != nil {
		return profile.Profile{}, []Issue{{
			Key:         path,
			Description: fmt.Sprintf("unreadable (%v), runios treats it as empty", err),
			FixAction:   FixResetProfile,
			Category:    CategoryProfile,
			Severity:    SeverityWarn,
		}}
	}

	var issues []Issue
	if p.HasDefault() && !team.Valid(p.DevTeam) {
		issues = append(issues, Issue{
			Key:         p.DevTeam,
			Description: fmt.Sprintf("default team is not %d characters long", team.IDLength),
			FixAction:   FixClearDefault,
			Category:    CategoryProfile,
			Severity:    SeverityError,
		})
	}
	for _, id := range p.DevTeams {
		if !team.Valid(id) {
			issues = append(issues, Issue{
				Key:         id,
				Description: "known team has the wrong length",
				FixAction:   FixDropInvalid,
				Category:    CategoryProfile,
				Severity:    SeverityWarn,
			})
		}
	}
	return p, issues
}

// checkProject verifies dir holds an Xcode workspace or project.
func checkProject(dir string) (xcode.Project, []Issue) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return xcode.Project{}, []Issue{{
			Key:         dir,
			Description: "project folder not found",
			Category:    CategoryProject,
			Severity:    SeverityWarn,
		}}
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	project, ok := xcode.FindProject(names)
	if !ok {
		return xcode.Project{}, []Issue{{
			Key:         dir,
			Description: "no .xcworkspace or .xcodeproj inside",
			Category:    CategoryProject,
			Severity:    SeverityError,
		}}
	}
	return project, nil
}
