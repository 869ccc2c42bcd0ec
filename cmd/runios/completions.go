package main

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/runner"
)

// completeSimulators completes --simulator with available simulator names.
func completeSimulators(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	tools := &runner.XcrunToolchain{}
	data, err := tools.ListSimulators(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	sims, err := device.ParseSimulators(data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, s := range sims {
		if strings.HasPrefix(s.Name, toComplete) && !slices.Contains(names, s.Name) {
			names = append(names, s.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeDevices completes --device with connected device names.
func completeDevices(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	tools := &runner.XcrunToolchain{}
	text, err := tools.ListDevices(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, d := range device.ParseDeviceList(text) {
		if strings.HasPrefix(d.Name, toComplete) {
			names = append(names, d.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeKnownTeams completes team IDs remembered from the last search.
func completeKnownTeams(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	path, err := profile.Path()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var ids []string
	for _, id := range profile.Load(path).DevTeams {
		if strings.HasPrefix(id, toComplete) {
			ids = append(ids, id)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
