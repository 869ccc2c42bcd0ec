package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/output"
	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/team"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "team",
		Short:   "Manage the saved development team",
		GroupID: GroupTeam,
		Long: `Manage the development team runios signs device builds with.

The saved team is used when --development-team is passed without a value.
Teams are stored in ~/.rninfo.`,
		Example: `  runios team show            # Show the saved team
  runios team set ABCDE12345  # Save a team
  runios team select          # Pick or search for a team
  runios team clear           # Forget the saved team`,
	}

	cmd.AddCommand(newTeamShowCmd())
	cmd.AddCommand(newTeamSetCmd())
	cmd.AddCommand(newTeamClearCmd())
	cmd.AddCommand(newTeamSelectCmd())

	return cmd
}

func newTeamShowCmd() *cobra.Command {
	var (
		jsonOutput      bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved and known teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := profile.Path()
			if err != nil {
				return err
			}
			p := profile.Load(path)

			if copyToClipboard {
				if !p.HasDefault() {
					return fmt.Errorf("no development team saved")
				}
				if err := clipboard.WriteAll(p.DevTeam); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			if jsonOutput {
				return out.JSON(p)
			}

			if p.HasDefault() {
				out.Printf("Default: %s\n", p.DevTeam)
			} else {
				out.Println("Default: (none)")
			}
			if len(p.DevTeams) > 0 {
				out.Println("Known:")
				for _, id := range p.DevTeams {
					out.Printf("  %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the saved team to the clipboard")

	return cmd
}

func newTeamSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <team-id>",
		Short: "Save a team as the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id := args[0]
			if err := team.ValidateID(id); err != nil {
				return err
			}

			path, err := profile.Path()
			if err != nil {
				return err
			}
			team.SaveDefault(ctx, profile.FileStore{Path: path}, profile.Load(path), id)
			return nil
		},
		ValidArgsFunction: completeKnownTeams,
	}

	return cmd
}

func newTeamClearCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log.FromContext(cmd.Context())

			path, err := profile.Path()
			if err != nil {
				return err
			}
			p := profile.Load(path)

			if !p.HasDefault() && (!all || len(p.DevTeams) == 0) {
				l.Println("No development team saved")
				return nil
			}

			p.DevTeam = ""
			if all {
				p.DevTeams = nil
			}
			if err := profile.Save(path, p); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			l.Println("Cleared saved development team")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also forget the teams found by the last search")

	return cmd
}

func newTeamSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick, search for or type a team",
		Long: `Pick one of the known teams, search your Xcode projects for teams or
type one in, then optionally save it as the default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			path, err := profile.Path()
			if err != nil {
				return err
			}

			id, _, err := newTeamResolver(path).Choose(ctx, profile.Load(path))
			if err != nil {
				return err
			}
			out.Println(id)
			return nil
		},
	}

	return cmd
}
