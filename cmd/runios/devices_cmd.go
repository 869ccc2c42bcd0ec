package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/output"
	"github.com/raphi011/runios/internal/runner"
	"github.com/raphi011/runios/internal/ui/progress"
	"github.com/raphi011/runios/internal/ui/static"
)

// deviceListing is the JSON shape of `runios devices --json`.
type deviceListing struct {
	Devices    []device.Device    `json:"devices"`
	Simulators []device.Simulator `json:"simulators"`
}

func newDevicesCmd() *cobra.Command {
	var (
		jsonOutput     bool
		onlyDevices    bool
		onlySimulators bool
	)

	cmd := &cobra.Command{
		Use:     "devices",
		Short:   "List connected devices and simulators",
		Aliases: []string{"ls"},
		GroupID: GroupDevice,
		Args:    cobra.NoArgs,
		Example: `  runios devices               # List everything
  runios devices --simulators  # Only simulators
  runios devices --json        # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			tools := &runner.XcrunToolchain{Verbose: verbose}

			listing := deviceListing{Devices: []device.Device{}, Simulators: []device.Simulator{}}

			if !onlySimulators {
				text, err := tools.ListDevices(ctx)
				if err != nil {
					if onlyDevices {
						return fmt.Errorf("list devices: %w", err)
					}
					l.Printf("Warning: failed to list devices: %v\n", err)
				} else {
					listing.Devices = device.ParseDeviceList(text)
				}
			}

			if !onlyDevices {
				sims, err := progress.While("Listing simulators", func() ([]device.Simulator, error) {
					data, err := tools.ListSimulators(ctx)
					if err != nil {
						return nil, err
					}
					return device.ParseSimulators(data)
				})
				if err != nil {
					return fmt.Errorf("%w: %v", runner.ErrSimulatorList, err)
				}
				listing.Simulators = sims
			}

			if jsonOutput {
				return out.JSON(listing)
			}

			if !onlySimulators {
				out.Println("Devices:")
				if len(listing.Devices) == 0 {
					out.Println("  No iOS devices connected.")
				} else {
					out.Print(static.DeviceTable(listing.Devices))
				}
			}
			if !onlyDevices {
				if !onlySimulators {
					out.Println()
				}
				out.Println("Simulators:")
				if len(listing.Simulators) == 0 {
					out.Println("  No iOS simulators available.")
				} else {
					out.Print(static.SimulatorTable(listing.Simulators))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&onlyDevices, "devices", "d", false, "Only list connected devices")
	cmd.Flags().BoolVarP(&onlySimulators, "simulators", "s", false, "Only list simulators")
	cmd.MarkFlagsMutuallyExclusive("devices", "simulators")

	return cmd
}
