package main

import (
	"errors"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/config"
	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/team"
)

func TestTeamRequest(t *testing.T) {
	tests := []struct {
		name  string
		set   bool
		value string
		want  team.Request
	}{
		{"not passed", false, "", team.Request{}},
		{"not passed ignores value", false, "ABCDE12345", team.Request{}},
		{"bare flag", true, useSavedTeam, team.Default()},
		{"empty value", true, "", team.Default()},
		{"explicit", true, "ABCDE12345", team.ExplicitID("ABCDE12345")},
		{"explicit wrong length", true, "ABC", team.ExplicitID("ABC")},
	}
	for _, tt := range tests {
		if got := teamRequest(tt.set, tt.value); got != tt.want {
			t.Errorf("%s: teamRequest(%v, %q) = %+v, want %+v", tt.name, tt.set, tt.value, got, tt.want)
		}
	}
}

func TestRunFlagsOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Scheme = "FromConfig"

	t.Run("config fills unset flags", func(t *testing.T) {
		opts := runFlags{}.options(&cfg, false, nil)
		if opts.ProjectPath != "ios" || opts.Simulator != "iPhone 6" || opts.Configuration != "Debug" {
			t.Errorf("options = %+v", opts)
		}
		if opts.Scheme != "FromConfig" {
			t.Errorf("Scheme = %q, want FromConfig", opts.Scheme)
		}
		if !opts.LaunchPackager {
			t.Error("LaunchPackager = false, want true")
		}
		if opts.Team.Kind != team.NotRequested {
			t.Errorf("Team = %+v, want not requested", opts.Team)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		f := runFlags{
			projectPath:   "native",
			simulator:     "iPhone 15",
			configuration: "Release",
			scheme:        "Other",
			device:        "<any>",
			team:          useSavedTeam,
			noPackager:    true,
		}
		args := []string{"--device"}
		opts := f.options(&cfg, true, args)
		if opts.ProjectPath != "native" || opts.Simulator != "iPhone 15" || opts.Configuration != "Release" || opts.Scheme != "Other" {
			t.Errorf("options = %+v", opts)
		}
		if opts.Device != "<any>" || opts.Team.Kind != team.UseDefault {
			t.Errorf("device/team = %q/%+v", opts.Device, opts.Team)
		}
		if opts.LaunchPackager {
			t.Error("LaunchPackager = true with --no-packager")
		}
		if !slices.Equal(opts.Args, args) {
			t.Errorf("Args = %v, want %v", opts.Args, args)
		}
	})

	t.Run("packager disabled in config", func(t *testing.T) {
		off := config.Default()
		off.Packager = false
		if opts := (runFlags{}).options(&off, false, nil); opts.LaunchPackager {
			t.Error("LaunchPackager = true, want config value false")
		}
	})
}

func TestUsageError(t *testing.T) {
	inner := errors.New("unknown flag: --simulatr")
	var err error = &usageError{inner}

	var ue *usageError
	if !errors.As(err, &ue) {
		t.Fatal("errors.As(usageError) = false")
	}
	if !errors.Is(err, inner) || err.Error() != inner.Error() {
		t.Errorf("usageError does not wrap %v", inner)
	}
}

func TestSource(t *testing.T) {
	t.Setenv(config.EnvSimulator, "iPhone 15")

	if got := source(true, config.EnvSimulator); got != " (env RUNIOS_SIMULATOR)" {
		t.Errorf("env source = %q", got)
	}
	if got := source(true, ""); got != " (local)" {
		t.Errorf("local source = %q", got)
	}
	if got := source(false, ""); got != "" {
		t.Errorf("global source = %q", got)
	}
}

func TestJoinOptionalValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"team with value", []string{"--development-team", "ABCDE12345"}, []string{"--development-team=ABCDE12345"}},
		{"device with value", []string{"--device", "Max's iPhone"}, []string{"--device=Max's iPhone"}},
		{"bare at end", []string{"--scheme", "App", "--device"}, []string{"--scheme", "App", "--device"}},
		{"next is a flag", []string{"--development-team", "--device"}, []string{"--development-team", "--device"}},
		{"next is a short flag", []string{"--device", "-v"}, []string{"--device", "-v"}},
		{"already joined", []string{"--device=A"}, []string{"--device=A"}},
		{"other flags untouched", []string{"--simulator", "iPhone 15"}, []string{"--simulator", "iPhone 15"}},
		{"stops at double dash", []string{"--device", "A", "--", "--device", "B"}, []string{"--device=A", "--", "--device", "B"}},
		{"completion request", []string{cobra.ShellCompRequestCmd, "--device", ""}, []string{cobra.ShellCompRequestCmd, "--device", ""}},
		{"completion request no desc", []string{cobra.ShellCompNoDescRequestCmd, "--device", "M"}, []string{cobra.ShellCompNoDescRequestCmd, "--device", "M"}},
	}
	for _, tt := range tests {
		if got := joinOptionalValues(tt.args); !slices.Equal(got, tt.want) {
			t.Errorf("%s: joinOptionalValues(%q) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

// parseRun parses argv the way Execute does, against a fresh root command.
func parseRun(t *testing.T, argv ...string) (*cobra.Command, runFlags, error) {
	t.Helper()

	var f runFlags
	c := &cobra.Command{Use: "runios", Args: rootArgs, RunE: func(*cobra.Command, []string) error { return nil }}
	registerRunFlags(c, &f)

	if err := c.ParseFlags(joinOptionalValues(argv)); err != nil {
		return c, f, err
	}
	if err := c.ValidateArgs(c.Flags().Args()); err != nil {
		return c, f, err
	}
	return c, f, c.ValidateFlagGroups()
}

func TestParseRunFlags(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		wantTeam   team.Request
		wantDevice string
		wantScheme string
	}{
		{"no flags", nil, team.Request{}, "", ""},
		{"bare team", []string{"--development-team"}, team.Default(), "", ""},
		{"team with equals", []string{"--development-team=ABCDE12345"}, team.ExplicitID("ABCDE12345"), "", ""},
		{"team with space", []string{"--development-team", "ABCDE12345"}, team.ExplicitID("ABCDE12345"), "", ""},
		{"bare team then bare device", []string{"--development-team", "--device"}, team.Default(), device.Unspecified, ""},
		{"bare device", []string{"--device"}, team.Request{}, device.Unspecified, ""},
		{"device with equals", []string{"--device=Max's iPhone"}, team.Request{}, "Max's iPhone", ""},
		{"device with space", []string{"--device", "Max's iPhone"}, team.Request{}, "Max's iPhone", ""},
		{"device then team", []string{"--device", "A", "--development-team", "ABCDE12345"}, team.ExplicitID("ABCDE12345"), "A", ""},
		{"bare device then other flag", []string{"--device", "--scheme", "App"}, team.Request{}, device.Unspecified, "App"},
	}
	for _, tt := range tests {
		c, f, err := parseRun(t, tt.argv...)
		if err != nil {
			t.Errorf("%s: parse %q: %v", tt.name, tt.argv, err)
			continue
		}
		if got := teamRequest(c.Flags().Changed("development-team"), f.team); got != tt.wantTeam {
			t.Errorf("%s: team = %+v, want %+v", tt.name, got, tt.wantTeam)
		}
		if f.device != tt.wantDevice {
			t.Errorf("%s: device = %q, want %q", tt.name, f.device, tt.wantDevice)
		}
		if f.scheme != tt.wantScheme {
			t.Errorf("%s: scheme = %q, want %q", tt.name, f.scheme, tt.wantScheme)
		}
	}
}

func TestParseRunFlags_Errors(t *testing.T) {
	t.Run("extra word after device value", func(t *testing.T) {
		_, _, err := parseRun(t, "--device", "A", "B")
		var ue *usageError
		if !errors.As(err, &ue) {
			t.Fatalf("err = %v, want usage error", err)
		}
	})

	t.Run("device and udid", func(t *testing.T) {
		_, _, err := parseRun(t, "--device", "A", "--udid", "00008030-001A")
		if err == nil {
			t.Fatal("expected mutual exclusion error")
		}
	})

	t.Run("bare device and udid", func(t *testing.T) {
		_, _, err := parseRun(t, "--device", "--udid", "00008030-001A")
		if err == nil {
			t.Fatal("expected mutual exclusion error")
		}
	})
}
