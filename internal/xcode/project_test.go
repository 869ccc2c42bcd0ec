package xcode

import "testing"

func TestFindProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		files  []string
		want   Project
		wantOK bool
	}{
		{
			name:   "project only",
			files:  []string{"Podfile", "MyApp.xcodeproj", "MyApp"},
			want:   Project{Name: "MyApp.xcodeproj"},
			wantOK: true,
		},
		{
			name:   "workspace next to project",
			files:  []string{"MyApp.xcodeproj", "MyApp.xcworkspace", "Pods"},
			want:   Project{Name: "MyApp.xcworkspace", IsWorkspace: true},
			wantOK: true,
		},
		{
			name:   "last name in sort order wins",
			files:  []string{"Alpha.xcworkspace", "Zulu.xcodeproj"},
			want:   Project{Name: "Zulu.xcodeproj"},
			wantOK: true,
		},
		{
			name:   "input order does not matter",
			files:  []string{"Zulu.xcodeproj", "Alpha.xcworkspace"},
			want:   Project{Name: "Zulu.xcodeproj"},
			wantOK: true,
		},
		{
			name:  "nothing to build",
			files: []string{"Podfile", "main.m"},
		},
		{
			name: "empty directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FindProject(tt.files)
			if ok != tt.wantOK {
				t.Fatalf("FindProject(%v) ok = %v, want %v", tt.files, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("FindProject(%v) = %+v, want %+v", tt.files, got, tt.want)
			}
		})
	}
}

func TestFindProject_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	files := []string{"B.xcodeproj", "A.xcodeproj"}
	FindProject(files)
	if files[0] != "B.xcodeproj" {
		t.Errorf("FindProject sorted its input: %v", files)
	}
}

func TestProject_Scheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		project Project
		scheme  string
		kind    string
	}{
		{Project{Name: "MyApp.xcodeproj"}, "MyApp", "project"},
		{Project{Name: "My.App.xcworkspace", IsWorkspace: true}, "My.App", "workspace"},
	}
	for _, tt := range tests {
		if got := tt.project.Scheme(); got != tt.scheme {
			t.Errorf("%s Scheme() = %q, want %q", tt.project.Name, got, tt.scheme)
		}
		if got := tt.project.Kind(); got != tt.kind {
			t.Errorf("%s Kind() = %q, want %q", tt.project.Name, got, tt.kind)
		}
	}
}
