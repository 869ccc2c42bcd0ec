package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/runios/internal/cmd"
	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/ui/styles"
)

// Options say where to look.
type Options struct {
	// ProfilePath is the team cache file.
	ProfilePath string
	// ProjectDir is the iOS project folder. Skipped when empty.
	ProjectDir string
	// Available reports whether a program is on PATH. Defaults to cmd.Available.
	Available func(name string) bool
}

// ErrIssues is returned when at least one error-severity issue remains.
type ErrIssues struct {
	Count int
}

func (e *ErrIssues) Error() string {
	return fmt.Sprintf("%d issue(s) found", e.Count)
}

// Run performs the checks, prints a report to w and optionally fixes the
// profile. It fails if any error-severity issue is left unfixed.
func Run(ctx context.Context, w io.Writer, opts Options, fix bool) error {
	l := log.FromContext(ctx)

	available := opts.Available
	if available == nil {
		available = cmd.Available
	}

	var stats IssueStats
	var allIssues []Issue

	fmt.Fprintln(w, "Checking tools...")
	found, toolIssues := checkTools(Tools, available)
	stats.ToolsFound = len(found)
	for _, issue := range toolIssues {
		if issue.Severity == SeverityError {
			stats.ToolsMissing++
		} else {
			stats.ToolsOptional++
		}
	}
	allIssues = append(allIssues, toolIssues...)

	fmt.Fprintln(w, "Checking development team cache...")
	p, profileIssues := checkProfile(opts.ProfilePath)
	stats.KnownTeams = len(p.DevTeams)
	stats.ProfileIssues = len(profileIssues)
	allIssues = append(allIssues, profileIssues...)
	l.Debug("profile checked", "path", opts.ProfilePath, "default", p.DevTeam, "known", len(p.DevTeams))

	if opts.ProjectDir != "" {
		fmt.Fprintln(w, "Checking project...")
		project, projectIssues := checkProject(opts.ProjectDir)
		stats.ProjectIssues = len(projectIssues)
		allIssues = append(allIssues, projectIssues...)
		if len(projectIssues) == 0 {
			fmt.Fprintln(w, "  "+styles.OK(fmt.Sprintf("Xcode %s %s", project.Kind(), project.Name)))
		}
	}

	printSummary(w, stats, p.DevTeam)

	if len(allIssues) == 0 {
		fmt.Fprintln(w, "\n"+styles.OK("No issues found"))
		return nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(allIssues))
	printIssuesByCategory(w, allIssues)

	remaining := countErrors(allIssues)
	if fix {
		if err := fixIssues(w, opts.ProfilePath, p, allIssues); err != nil {
			return err
		}
		remaining = 0
		for _, issue := range allIssues {
			if issue.Severity == SeverityError && issue.FixAction == FixNone {
				remaining++
			}
		}
	} else if hasFixable(allIssues) {
		fmt.Fprintln(w, "\nRun 'runios doctor --fix' to repair the cache.")
	}

	if remaining > 0 {
		return &ErrIssues{Count: remaining}
	}
	return nil
}

func countErrors(issues []Issue) int {
	var n int
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

func hasFixable(issues []Issue) bool {
	for _, issue := range issues {
		if issue.FixAction != FixNone {
			return true
		}
	}
	return false
}

// printSummary prints a categorized summary.
func printSummary(w io.Writer, stats IssueStats, defaultTeam string) {
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  "+styles.OK(fmt.Sprintf("%d tools found", stats.ToolsFound)))
	if stats.ToolsMissing > 0 {
		fmt.Fprintln(w, "  "+styles.Fail(fmt.Sprintf("%d required tools missing", stats.ToolsMissing)))
	}
	if stats.ToolsOptional > 0 {
		fmt.Fprintln(w, "  "+styles.Warn(fmt.Sprintf("%d optional tools missing", stats.ToolsOptional)))
	}

	if defaultTeam != "" {
		fmt.Fprintln(w, "  "+styles.OK("default development team "+defaultTeam))
	}
	if stats.KnownTeams > 0 {
		fmt.Fprintln(w, "  "+styles.OK(fmt.Sprintf("%d known development teams", stats.KnownTeams)))
	}
	if stats.ProfileIssues > 0 {
		fmt.Fprintln(w, "  "+styles.Warn(fmt.Sprintf("%d cache issues", stats.ProfileIssues)))
	}
	if stats.ProjectIssues > 0 {
		fmt.Fprintln(w, "  "+styles.Warn(fmt.Sprintf("%d project issues", stats.ProjectIssues)))
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryTools:   "Tools",
		CategoryProfile: "Development team cache",
		CategoryProject: "Project",
	}

	for _, cat := range []IssueCategory{CategoryTools, CategoryProfile, CategoryProject} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			line := fmt.Sprintf("%s: %s", issue.Key, issue.Description)
			if issue.Severity == SeverityError {
				fmt.Fprintln(w, "  "+styles.Fail(line))
			} else {
				fmt.Fprintln(w, "  "+styles.Warn(line))
			}
		}
	}
}
