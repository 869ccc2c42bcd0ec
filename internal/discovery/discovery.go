// Package discovery finds development team IDs in existing Xcode projects.
//
// The search shells out to find/grep/xargs/sort/uniq instead of walking the
// tree natively: the pipeline stops after 500 project files and is what
// users can reproduce by hand. Only the output parsing happens in Go.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/runios/internal/cmd"
)

// maxProjects caps how many project.pbxproj files are grepped.
const maxProjects = 500

// keyPrefix starts every team assignment line in a project file,
// e.g. `DevelopmentTeam = ABCDE12345;`.
const keyPrefix = "DevelopmentTeam"

// assignment is the length of `DevelopmentTeam = `.
const assignment = len(keyPrefix + " = ")

// Searcher runs the search pipeline through sh.
type Searcher struct {
	// Shell runs the pipeline. Defaults to "sh".
	Shell string
}

// Search returns the distinct team IDs assigned in project files under baseDir,
// in the order the pipeline printed them.
func (s Searcher) Search(ctx context.Context, baseDir string) ([]string, error) {
	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}
	out, err := cmd.OutputContext(ctx, "", shell, "-c", Pipeline(baseDir))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", baseDir, err)
	}
	return ParseTeams(string(out)), nil
}

// Pipeline returns the shell pipeline that lists team assignment lines.
func Pipeline(baseDir string) string {
	return fmt.Sprintf(
		`find %s | grep -m%d "project\.pbxproj" | xargs -L1 -J ABC grep "evelopmentTeam" "ABC" 2>/dev/null | sort | uniq`,
		shellQuote(baseDir), maxProjects,
	)
}

// ParseTeams extracts IDs from grep output. A line counts when, trimmed, it
// starts with DevelopmentTeam; the trailing ";" and the `DevelopmentTeam = `
// prefix are cut off. Duplicates are dropped, first occurrence wins.
func ParseTeams(out string) []string {
	var teams []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, keyPrefix) {
			continue
		}
		line = line[:len(line)-1]
		if len(line) < assignment {
			continue
		}
		id := strings.TrimSpace(line[assignment:])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		teams = append(teams, id)
	}
	return teams
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
