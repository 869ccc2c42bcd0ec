package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/config"
	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/output"
	"github.com/raphi011/runios/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg      *config.Config
	localCfg *config.LocalConfig
	workDir  string
)

// Command group IDs for organizing help output
const (
	GroupTeam   = "team"
	GroupDevice = "device"
	GroupConfig = "config"
)

// usageError marks errors caused by how runios was invoked.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// rootCmd builds and runs the app when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "runios",
	Short: "Build and run a React Native app on iOS",
	Long: `runios builds the iOS project of a React Native app with xcodebuild and
runs it on a simulator or a connected device.

Without flags it boots the configured simulator. Pass --device to run on a
connected iPhone and --development-team to sign with your team; the team
you pick can be saved and reused with a bare --development-team.`,
	Example: `  runios                                  # Run on the default simulator
  runios --simulator "iPhone 15"          # Run on a specific simulator
  runios --device                         # Run on the only connected device
  runios --device "Max's iPhone"          # Run on a named device
  runios --development-team               # Sign with the saved team
  runios --development-team ABCDE12345    # Sign with an explicit team`,
	Args:                       rootArgs,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return &usageError{fmt.Errorf("--verbose and --quiet are mutually exclusive")}
		}

		// Flags are parsed now, so the logger can honour them.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	var err error

	// Get working directory
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "runios: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Load config: global file, then .runios.toml, then environment
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	localCfg, err = config.LoadLocal(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using global config)\n", err)
	}
	effective := config.MergeLocal(&loadedCfg, localCfg).WithEnv()
	cfg = &effective

	styles.Init(cfg.Theme)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, cfg)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)
	rootCmd.SetArgs(joinOptionalValues(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'runios -h' for help")
		}
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show raw xcodebuild output and external commands")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	registerRunFlags(rootCmd, &runOpts)

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupTeam, Title: "Development Team Commands:"},
		&cobra.Group{ID: GroupDevice, Title: "Device Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Team commands
	rootCmd.AddCommand(newTeamCmd())

	// Device commands
	rootCmd.AddCommand(newDevicesCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
