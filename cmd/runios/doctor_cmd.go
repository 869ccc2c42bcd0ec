package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/config"
	"github.com/raphi011/runios/internal/doctor"
	"github.com/raphi011/runios/internal/output"
	"github.com/raphi011/runios/internal/profile"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix         bool
		projectPath string
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose the build environment",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the tools and files runios depends on.

Checks:
- xcodebuild, xcrun and PlistBuddy are installed
- xcpretty and ios-deploy are installed (optional)
- The development team cache (~/.rninfo) is valid
- The project folder contains an Xcode workspace or project`,
		Example: `  runios doctor          # Check for issues
  runios doctor --fix    # Repair the team cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			profilePath, err := profile.Path()
			if err != nil {
				return err
			}

			if projectPath == "" {
				projectPath = cfg.ProjectPath
			}
			if !filepath.IsAbs(projectPath) {
				projectPath = filepath.Join(workDir, projectPath)
			}

			return doctor.Run(ctx, out.Writer(), doctor.Options{
				ProfilePath: profilePath,
				ProjectDir:  projectPath,
			}, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the development team cache")
	cmd.Flags().StringVar(&projectPath, "project-path", "", "Folder of the Xcode project to check")

	return cmd
}
