package profile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    Profile
	}{
		{
			name:    "missing file",
			content: nil,
			want:    Profile{},
		},
		{
			name:    "corrupt file",
			content: ptr(`{devteam:`),
			want:    Profile{},
		},
		{
			name:    "default only",
			content: ptr(`{"devteam":"AAAAAAAAAA"}`),
			want:    Profile{DevTeam: "AAAAAAAAAA"},
		},
		{
			name:    "default and known teams",
			content: ptr(`{"devteams":["AAAAAAAAAA","BBBBBBBBBB"],"devteam":"AAAAAAAAAA"}`),
			want:    Profile{DevTeam: "AAAAAAAAAA", DevTeams: []string{"AAAAAAAAAA", "BBBBBBBBBB"}},
		},
		{
			name:    "unknown keys are ignored",
			content: ptr(`{"devteam":"AAAAAAAAAA","other":true}`),
			want:    Profile{DevTeam: "AAAAAAAAAA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), FileName)
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o600); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}

			got := Load(path)
			if got.DevTeam != tt.want.DevTeam {
				t.Errorf("DevTeam = %q, want %q", got.DevTeam, tt.want.DevTeam)
			}
			if !slices.Equal(got.DevTeams, tt.want.DevTeams) {
				t.Errorf("DevTeams = %v, want %v", got.DevTeams, tt.want.DevTeams)
			}
		})
	}
}

func TestSave_ReplacesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, Profile{DevTeam: "AAAAAAAAAA", DevTeams: []string{"AAAAAAAAAA"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, Profile{DevTeams: []string{"BBBBBBBBBB"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(data), `{"devteams":["BBBBBBBBBB"]}`; got != want {
		t.Errorf("file = %s, want %s", got, want)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read(missing) error = %v, want fs.ErrNotExist", err)
	}

	corrupt := filepath.Join(dir, "corrupt")
	if err := os.WriteFile(corrupt, []byte(`{devteam:`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Read(corrupt); err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read(corrupt) error = %v, want a parse error", err)
	}

	good := filepath.Join(dir, "good")
	if err := os.WriteFile(good, []byte(`{"devteam":"AAAAAAAAAA"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if p, err := Read(good); err != nil || p.DevTeam != "AAAAAAAAAA" {
		t.Errorf("Read(good) = %+v, %v", p, err)
	}
}

func TestSave_CreatesPrivateFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "home")
	path := filepath.Join(dir, FileName)
	if err := Save(path, Profile{DevTeam: "AAAAAAAAAA"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %v, want 0600", perm)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != FileName {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only %s", names, FileName)
	}
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if want := filepath.Join(home, FileName); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	store := FileStore{Path: filepath.Join(t.TempDir(), FileName)}
	if err := store.Save(Profile{DevTeam: "CCCCCCCCCC"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(store.Path); got.DevTeam != "CCCCCCCCCC" {
		t.Errorf("Load().DevTeam = %q, want CCCCCCCCCC", got.DevTeam)
	}
}

func TestHasDefault(t *testing.T) {
	t.Parallel()

	if (Profile{}).HasDefault() {
		t.Error("empty profile should have no default")
	}
	if !(Profile{DevTeam: "AAAAAAAAAA"}).HasDefault() {
		t.Error("profile with devteam should have a default")
	}
}

func ptr(s string) *string { return &s }
