package discovery

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParseTeams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "empty output",
			out:  "",
			want: nil,
		},
		{
			name: "single assignment",
			out:  "\t\t\t\t\t\tDevelopmentTeam = ABCDE12345;\n",
			want: []string{"ABCDE12345"},
		},
		{
			name: "dedupes and keeps order",
			out: strings.Join([]string{
				"DevelopmentTeam = BBBBBBBBBB;",
				"DevelopmentTeam = AAAAAAAAAA;",
				"DevelopmentTeam = BBBBBBBBBB;",
			}, "\n"),
			want: []string{"BBBBBBBBBB", "AAAAAAAAAA"},
		},
		{
			name: "ignores build setting spelling",
			out:  "DEVELOPMENT_TEAM = CCCCCCCCCC;\n\"DEVELOPMENT_TEAM[sdk=iphoneos*]\" = DDDDDDDDDD;",
			want: nil,
		},
		{
			name: "ids are not validated",
			out:  "DevelopmentTeam = \"\";\nDevelopmentTeam = SHORT;",
			want: []string{`""`, "SHORT"},
		},
		{
			name: "prefix match is literal",
			out:  "DevelopmentTeam;\nDevelopmentTeamName = \"Jane\";",
			want: []string{`e = "Jane"`},
		},
		{
			name: "windows line endings",
			out:  "DevelopmentTeam = EEEEEEEEEE;\r\n",
			want: []string{"EEEEEEEEEE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseTeams(tt.out); !slices.Equal(got, tt.want) {
				t.Errorf("ParseTeams() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPipeline_QuotesDirectory(t *testing.T) {
	t.Parallel()

	got := Pipeline("/Users/max/it's here")
	if !strings.HasPrefix(got, `find '/Users/max/it'\''s here' | grep -m500 `) {
		t.Errorf("Pipeline() = %q", got)
	}
	if !strings.HasSuffix(got, "| sort | uniq") {
		t.Errorf("Pipeline() = %q, want sort | uniq suffix", got)
	}
}

func TestSearcher_ParsesShellOutput(t *testing.T) {
	t.Parallel()

	// A stand-in shell that ignores the pipeline and prints grep-like output.
	dir := t.TempDir()
	fake := filepath.Join(dir, "fakesh")
	script := "#!/bin/sh\nprintf '\\t\\tDevelopmentTeam = AAAAAAAAAA;\\n\\t\\tDevelopmentTeam = BBBBBBBBBB;\\n'\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Searcher{Shell: fake}.Search(context.Background(), dir)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"AAAAAAAAAA", "BBBBBBBBBB"}; !slices.Equal(got, want) {
		t.Errorf("Search() = %v, want %v", got, want)
	}
}

func TestSearcher_Failure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := filepath.Join(dir, "failsh")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\necho 'find: boom' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Searcher{Shell: fake}.Search(context.Background(), dir)
	if err == nil || !strings.Contains(err.Error(), "find: boom") {
		t.Errorf("Search() error = %v, want stderr text", err)
	}
}
