package xcode

import (
	"path/filepath"
	"slices"
	"strings"
)

// Project is the Xcode workspace or project file to build.
type Project struct {
	Name        string // file name, e.g. "MyApp.xcworkspace"
	IsWorkspace bool
}

// FindProject picks the project among directory entry names. Names are
// scanned in reverse sorted order; the first .xcworkspace or .xcodeproj wins.
func FindProject(names []string) (Project, bool) {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	for i := len(sorted) - 1; i >= 0; i-- {
		switch filepath.Ext(sorted[i]) {
		case ".xcworkspace":
			return Project{Name: sorted[i], IsWorkspace: true}, true
		case ".xcodeproj":
			return Project{Name: sorted[i]}, true
		}
	}
	return Project{}, false
}

// Kind returns "workspace" or "project".
func (p Project) Kind() string {
	if p.IsWorkspace {
		return "workspace"
	}
	return "project"
}

// Scheme returns the scheme name inferred from the file name.
func (p Project) Scheme() string {
	return strings.TrimSuffix(p.Name, filepath.Ext(p.Name))
}

// flag returns the xcodebuild option selecting this file.
func (p Project) flag() string {
	if p.IsWorkspace {
		return "-workspace"
	}
	return "-project"
}
