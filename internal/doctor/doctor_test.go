package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/runios/internal/profile"
)

func onPath(names ...string) func(string) bool {
	return func(name string) bool { return slices.Contains(names, name) }
}

func TestCheckTools(t *testing.T) {
	t.Parallel()

	tools := []Tool{
		{Name: "xcodebuild", Purpose: "build", Required: true},
		{Name: "xcpretty", Purpose: "format"},
		{Name: "PlistBuddy", Purpose: "plist", Required: true, Path: filepath.Join(t.TempDir(), "PlistBuddy")},
	}

	ok, issues := checkTools(tools, onPath("xcodebuild"))
	if len(ok) != 1 || ok[0].Name != "xcodebuild" {
		t.Errorf("found = %+v, want xcodebuild only", ok)
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %+v, want 2", issues)
	}
	if issues[0].Key != "xcpretty" || issues[0].Severity != SeverityWarn {
		t.Errorf("optional tool issue = %+v", issues[0])
	}
	if issues[1].Key != "PlistBuddy" || issues[1].Severity != SeverityError {
		t.Errorf("required tool issue = %+v", issues[1])
	}
}

func TestCheckProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string // empty: no file
		want    []string
	}{
		{name: "missing file"},
		{name: "valid", content: `{"devteam":"ABCDE12345","devteams":["ABCDE12345"]}`},
		{name: "corrupt", content: `{"devteam":`, want: []string{FixResetProfile}},
		{name: "short default", content: `{"devteam":"ABC"}`, want: []string{FixClearDefault}},
		{name: "bad known teams", content: `{"devteams":["ABCDE12345","X","Y"]}`, want: []string{FixDropInvalid, FixDropInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".rninfo")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			_, issues := checkProfile(path)
			var got []string
			for _, issue := range issues {
				got = append(got, issue.FixAction)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("fix actions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, issues := checkProject(filepath.Join(dir, "ios")); len(issues) != 1 || issues[0].Severity != SeverityWarn {
		t.Errorf("missing folder issues = %+v", issues)
	}

	if err := os.MkdirAll(filepath.Join(dir, "ios", "Pods"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, issues := checkProject(filepath.Join(dir, "ios")); len(issues) != 1 || issues[0].Severity != SeverityError {
		t.Errorf("empty folder issues = %+v", issues)
	}

	if err := os.MkdirAll(filepath.Join(dir, "ios", "MyApp.xcworkspace"), 0o755); err != nil {
		t.Fatal(err)
	}
	project, issues := checkProject(filepath.Join(dir, "ios"))
	if len(issues) != 0 || project.Name != "MyApp.xcworkspace" {
		t.Errorf("checkProject() = %+v, %+v", project, issues)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	allTools := onPath("xcodebuild", "xcrun", "xcpretty", "ios-deploy")

	t.Run("optional tools missing is not an error", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		opts := Options{ProfilePath: filepath.Join(t.TempDir(), ".rninfo"), Available: onPath("xcodebuild", "xcrun")}
		err := Run(context.Background(), &buf, opts, false)

		var issuesErr *ErrIssues
		if errors.As(err, &issuesErr) {
			// PlistBuddy only exists on macOS.
			if _, statErr := os.Stat(Tools[2].Path); statErr == nil {
				t.Errorf("Run() error = %v", err)
			}
		}
		if !strings.Contains(buf.String(), "ios-deploy: not found") {
			t.Errorf("missing ios-deploy warning:\n%s", buf.String())
		}
	})

	t.Run("fix repairs the cache", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".rninfo")
		if err := os.WriteFile(path, []byte(`{"devteam":"ABC","devteams":["ABCDE12345","X"]}`), 0o600); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		err := Run(context.Background(), &buf, Options{ProfilePath: path, Available: allTools}, true)

		var issuesErr *ErrIssues
		if errors.As(err, &issuesErr) {
			if _, statErr := os.Stat(Tools[2].Path); statErr == nil {
				t.Errorf("Run() error = %v", err)
			}
		} else if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got := profile.Load(path)
		if got.DevTeam != "" || !slices.Equal(got.DevTeams, []string{"ABCDE12345"}) {
			t.Errorf("profile after fix = %+v", got)
		}
		if !strings.Contains(buf.String(), "Fixed 2 issue(s)") {
			t.Errorf("missing fix summary:\n%s", buf.String())
		}
	})

	t.Run("without fix reports remaining errors", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".rninfo")
		if err := os.WriteFile(path, []byte(`{"devteam":"ABC"}`), 0o600); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		err := Run(context.Background(), &buf, Options{ProfilePath: path, Available: allTools}, false)
		var issuesErr *ErrIssues
		if !errors.As(err, &issuesErr) {
			t.Fatalf("Run() error = %v, want *ErrIssues", err)
		}
		if !strings.Contains(buf.String(), "runios doctor --fix") {
			t.Errorf("missing fix hint:\n%s", buf.String())
		}
		if got := profile.Load(path); got.DevTeam != "ABC" {
			t.Errorf("profile changed without --fix: %+v", got)
		}
	})
}
