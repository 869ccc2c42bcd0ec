package main

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/config"
	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/discovery"
	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/runner"
	"github.com/raphi011/runios/internal/team"
	"github.com/raphi011/runios/internal/ui/progress"
	"github.com/raphi011/runios/internal/ui/prompt"
)

// useSavedTeam is the value of a bare --development-team.
const useSavedTeam = "<saved>"

// runFlags are the root command's own flags. Empty strings fall back to
// the effective config.
type runFlags struct {
	team          string
	device        string
	udid          string
	configuration string
	scheme        string
	projectPath   string
	simulator     string
	noPackager    bool
}

var runOpts runFlags

// optionalValueFlags take an optional value. pflag never consumes the next
// word for them, so joinOptionalValues turns "--device NAME" into
// "--device=NAME" before parsing.
var optionalValueFlags = []string{"--development-team", "--device"}

// joinOptionalValues joins each flag in optionalValueFlags with the word
// after it unless that word starts with "-". Everything after "--" and
// shell completion requests are left alone.
func joinOptionalValues(args []string) []string {
	if len(args) > 0 && (args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd) {
		return args
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(out, args[i:]...)
		}
		if slices.Contains(optionalValueFlags, a) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, a+"="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

// rootArgs rejects positional arguments as a usage error.
func rootArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err}
	}
	return nil
}

func registerRunFlags(cmd *cobra.Command, opts *runFlags) {
	f := cmd.Flags()
	f.StringVar(&opts.team, "development-team", "", "Sign with this team ID, or the saved one when no value is given")
	f.Lookup("development-team").NoOptDefVal = useSavedTeam
	f.StringVar(&opts.device, "device", "", "Run on the connected device with this name, or the only one when no name is given")
	f.Lookup("device").NoOptDefVal = device.Unspecified
	f.StringVar(&opts.udid, "udid", "", "Run on the connected device with this UDID")
	f.StringVar(&opts.configuration, "configuration", "", "Build configuration (default from config, "+config.DefaultConfiguration+")")
	f.StringVar(&opts.scheme, "scheme", "", "Scheme to build (default: the project name)")
	f.StringVar(&opts.projectPath, "project-path", "", "Folder of the Xcode project (default from config, "+config.DefaultProjectPath+")")
	f.StringVar(&opts.simulator, "simulator", "", "Simulator to run on (default from config, "+config.DefaultSimulator+")")
	f.BoolVar(&opts.noPackager, "no-packager", false, "Do not launch the packager while building")
	cmd.MarkFlagsMutuallyExclusive("device", "udid")

	cmd.RegisterFlagCompletionFunc("simulator", completeSimulators)
	cmd.RegisterFlagCompletionFunc("device", completeDevices)
	cmd.RegisterFlagCompletionFunc("configuration", cobra.FixedCompletions([]string{"Debug", "Release"}, cobra.ShellCompDirectiveNoFileComp))
}

// teamRequest turns the --development-team flag into a resolver request.
func teamRequest(set bool, value string) team.Request {
	switch {
	case !set:
		return team.Request{}
	case value == useSavedTeam || value == "":
		return team.Default()
	default:
		return team.ExplicitID(value)
	}
}

// options merges the flags over the effective config.
func (f runFlags) options(c *config.Config, teamSet bool, args []string) runner.Options {
	pick := func(flag, fallback string) string {
		if flag != "" {
			return flag
		}
		return fallback
	}

	return runner.Options{
		ProjectPath:    pick(f.projectPath, c.ProjectPath),
		Scheme:         pick(f.scheme, c.Scheme),
		Configuration:  pick(f.configuration, c.Configuration),
		Simulator:      pick(f.simulator, c.Simulator),
		Device:         f.device,
		UDID:           f.udid,
		Team:           teamRequest(teamSet, f.team),
		LaunchPackager: c.Packager && !f.noPackager,
		Args:           args,
	}
}

func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	opts := runOpts.options(config.FromContext(ctx), cmd.Flags().Changed("development-team"), os.Args[1:])

	r, err := newRunner()
	if err != nil {
		return err
	}
	return r.Run(ctx, opts)
}

func newRunner() (*runner.Runner, error) {
	profilePath, err := profile.Path()
	if err != nil {
		return nil, err
	}
	return &runner.Runner{
		Tools:       &runner.XcrunToolchain{Verbose: verbose},
		Teams:       newTeamResolver(profilePath),
		ProfilePath: profilePath,
		WorkDir:     workDir,
	}, nil
}

func newTeamResolver(profilePath string) *team.Resolver {
	return &team.Resolver{
		Prompter: prompt.NewPrompter(),
		Searcher: spinningSearcher{discovery.Searcher{}},
		Store:    profile.FileStore{Path: profilePath},
	}
}

// spinningSearcher shows a spinner while the project files are grepped.
type spinningSearcher struct {
	team.Searcher
}

func (s spinningSearcher) Search(ctx context.Context, baseDir string) ([]string, error) {
	return progress.While("Searching "+baseDir, func() ([]string, error) {
		return s.Searcher.Search(ctx, baseDir)
	})
}
