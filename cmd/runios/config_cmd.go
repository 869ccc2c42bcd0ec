package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/config"
	"github.com/raphi011/runios/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage runios configuration.

Global config: ~/.config/runios/config.toml
Local config:  .runios.toml (in the directory runios runs in)`,
		Example: `  runios config init          # Create default global config
  runios config init --local  # Create local project config
  runios config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.config/runios/config.toml.
With --local, creates per-project config at .runios.toml in the current directory.`,
		Example: `  runios config init           # Create global config
  runios config init --local   # Create local project config
  runios config init -f        # Overwrite existing config
  runios config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if local {
				if stdout {
					out.Print(config.DefaultLocalConfig())
					return nil
				}
				path, err := config.InitLocal(workDir, force)
				if err != nil {
					return err
				}
				out.Printf("Created local config: %s\n", path)
				return nil
			}

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}
			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.Init(path, force); err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-project .runios.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Values come from the global config, then .runios.toml in the current
directory, then RUNIOS_* environment variables. Each value is annotated
with where it came from unless it is the global one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg)
			}

			out.Println("Global config: ~/.config/runios/config.toml")
			if localCfg != nil {
				out.Printf("Local config:  %s\n", config.LocalConfigFileName)
			} else {
				out.Println("Local config:  (none)")
			}
			out.Println()

			out.Printf("project_path: %s%s\n", cfg.ProjectPath, source(localCfg != nil && localCfg.ProjectPath != "", config.EnvProjectPath))
			out.Printf("simulator: %s%s\n", cfg.Simulator, source(localCfg != nil && localCfg.Simulator != "", config.EnvSimulator))
			out.Printf("configuration: %s%s\n", cfg.Configuration, source(localCfg != nil && localCfg.Configuration != "", ""))
			scheme := cfg.Scheme
			if scheme == "" {
				scheme = "(project name)"
			}
			out.Printf("scheme: %s%s\n", scheme, source(localCfg != nil && localCfg.Scheme != "", ""))
			out.Printf("packager: %v%s\n", cfg.Packager, source(localCfg != nil && localCfg.Packager != nil, ""))
			if cfg.Theme.Name != "" {
				out.Printf("theme.name: %s\n", cfg.Theme.Name)
			}
			if cfg.Theme.Mode != "" {
				out.Printf("theme.mode: %s\n", cfg.Theme.Mode)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// source annotates where a config value came from.
func source(isLocal bool, envVar string) string {
	if envVar != "" && os.Getenv(envVar) != "" {
		return fmt.Sprintf(" (env %s)", envVar)
	}
	if isLocal {
		return " (local)"
	}
	return ""
}
