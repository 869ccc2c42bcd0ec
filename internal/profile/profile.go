// Package profile persists the development team choices runios remembers
// between runs.
//
// The record lives in a single JSON file at a fixed per-user location
// ($HOME/.rninfo):
//
//	{"devteam":"ABCDE12345","devteams":["ABCDE12345","ZYXWV98765"]}
//
// The file is read once per process and rewritten wholesale on every change.
// Concurrent runs are not coordinated; the last writer wins.
package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileName is the name of the profile file inside the home directory.
const FileName = ".rninfo"

// Profile is the persisted record of known and default development teams.
type Profile struct {
	// DevTeam is the default team used when --development-team has no value.
	DevTeam string `json:"devteam,omitempty"`
	// DevTeams holds the candidates found by the most recent search.
	DevTeams []string `json:"devteams,omitempty"`
}

// HasDefault reports whether a default team is stored.
func (p Profile) HasDefault() bool {
	return p.DevTeam != ""
}

// Path returns the fixed location of the profile file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Read parses the profile at path. A missing file is reported as
// os.ErrNotExist.
func Read(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load reads the profile at path. A missing, unreadable or corrupt file
// yields an empty profile.
func Load(path string) Profile {
	p, err := Read(path)
	if err != nil {
		return Profile{}
	}
	return p
}

// Save replaces the file at path with p. The record is written to a
// sibling temp file first so a reader never sees half of it.
func Save(path string, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FileStore saves profiles to a fixed path.
type FileStore struct {
	Path string
}

// Save replaces the store's file with p.
func (s FileStore) Save(p Profile) error {
	return Save(s.Path, p)
}
