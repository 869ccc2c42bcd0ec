// Package runner builds the app and runs it on a device or simulator.
//
// A run is strictly sequential: find the Xcode project, list devices,
// resolve the development team (when asked for), pick the destination,
// build once, then install and launch. The first failing step ends it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/runios/internal/device"
	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/profile"
	"github.com/raphi011/runios/internal/team"
	"github.com/raphi011/runios/internal/ui/static"
	"github.com/raphi011/runios/internal/xcode"
)

// ReactNativeScripts is where a create-react-native-app project keeps the
// script runios defers to when there is no native project.
var ReactNativeScripts = filepath.Join("node_modules", ".bin", "react-native-scripts")

// Options describe one run.
type Options struct {
	ProjectPath   string // relative to the working directory, or absolute
	Scheme        string // empty: inferred from the project file
	Configuration string // empty: xcode.DefaultConfiguration
	Simulator     string
	// Device selects a connected device by name. device.Unspecified picks
	// the only connected one. Empty means no device.
	Device         string
	UDID           string
	Team           team.Request
	LaunchPackager bool
	// Args are forwarded to react-native-scripts.
	Args []string
}

// Runner runs the app.
type Runner struct {
	Tools Toolchain
	Teams *team.Resolver
	// ProfilePath is the team cache read before resolving a team.
	ProfilePath string
	// WorkDir is the directory relative paths are resolved against.
	WorkDir string
}

// destination is the resolved build target.
type destination struct {
	udid     string
	name     string
	isDevice bool
}

// Run executes the whole sequence.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	l := log.FromContext(ctx)

	projectDir := r.path(opts.ProjectPath)
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return r.fallback(ctx, opts)
	}

	project, err := findProject(projectDir)
	if err != nil {
		return err
	}
	scheme := opts.Scheme
	if scheme == "" {
		scheme = project.Scheme()
	}
	l.Printf("Found Xcode %s %s\n", project.Kind(), project.Name)

	devices, err := r.listDevices(ctx, opts)
	if err != nil {
		return err
	}

	teamID, err := r.resolveTeam(ctx, opts.Team)
	if err != nil {
		return err
	}

	dest, err := r.selectDestination(ctx, opts, devices)
	if err != nil {
		return err
	}

	res, err := r.Tools.Build(ctx, projectDir, xcode.Target{
		Project:        project,
		Scheme:         scheme,
		Configuration:  opts.Configuration,
		UDID:           dest.udid,
		Team:           teamID,
		LaunchPackager: opts.LaunchPackager,
	})
	if err != nil {
		return err
	}

	appName := res.ProductName
	if appName == "" {
		l.Debug("build log named no product, using scheme", "scheme", scheme)
		appName = scheme
	}
	appPath := filepath.Join(projectDir, xcode.BuildPath(opts.Configuration, appName, dest.isDevice))

	if dest.isDevice {
		return r.installOnDevice(ctx, dest, appPath)
	}
	return r.installOnSimulator(ctx, dest, appPath)
}

func (r *Runner) path(p string) string {
	if filepath.IsAbs(p) || r.WorkDir == "" {
		return p
	}
	return filepath.Join(r.WorkDir, p)
}

// fallback hands over to react-native-scripts when there is no native
// project folder.
func (r *Runner) fallback(ctx context.Context, opts Options) error {
	script := r.path(ReactNativeScripts)
	if _, err := os.Stat(script); err != nil {
		return ErrProjectNotFound
	}
	log.FromContext(ctx).Debug("no project folder, deferring to react-native-scripts", "path", opts.ProjectPath)
	return r.Tools.RunScript(ctx, script, append([]string{"ios"}, opts.Args...))
}

func findProject(dir string) (xcode.Project, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return xcode.Project{}, fmt.Errorf("read project folder: %w", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	project, ok := xcode.FindProject(names)
	if !ok {
		return xcode.Project{}, fmt.Errorf("%w %s", ErrNoXcodeProject, dir)
	}
	return project, nil
}

// listDevices enumerates connected devices. A failing listing only matters
// when a device was asked for; simulator runs go on without it.
func (r *Runner) listDevices(ctx context.Context, opts Options) ([]device.Device, error) {
	out, err := r.Tools.ListDevices(ctx)
	if err != nil {
		if opts.Device != "" || opts.UDID != "" {
			return nil, fmt.Errorf("list devices: %w", err)
		}
		log.FromContext(ctx).Debug("device listing failed", "err", err)
		return nil, nil
	}
	return device.ParseDeviceList(out), nil
}

// resolveTeam loads the cached profile and resolves the requested team.
func (r *Runner) resolveTeam(ctx context.Context, req team.Request) (string, error) {
	if req.Kind == team.NotRequested {
		return "", nil
	}

	p := profile.Load(r.ProfilePath)
	id, _, err := r.Teams.Resolve(ctx, req, p)
	if errors.Is(err, team.ErrAborted) {
		log.FromContext(ctx).Println("I did not get a development team I can use - aborting")
	}
	return id, err
}

func (r *Runner) selectDestination(ctx context.Context, opts Options, devices []device.Device) (destination, error) {
	l := log.FromContext(ctx)

	switch {
	case opts.Device != "":
		d, ok := device.MatchByName(devices, opts.Device)
		if !ok {
			return destination{}, r.deviceNotFound(ctx, "name", opts.Device, devices)
		}
		if opts.Device == device.Unspecified {
			l.Printf("Using first available device %s due to lack of name supplied.\n", d.Name)
		}
		return destination{udid: d.UDID, name: d.Name, isDevice: true}, nil

	case opts.UDID != "":
		d, ok := device.MatchByUDID(devices, opts.UDID)
		if !ok {
			return destination{}, r.deviceNotFound(ctx, "udid", opts.UDID, devices)
		}
		return destination{udid: d.UDID, name: d.Name, isDevice: true}, nil

	default:
		return r.selectSimulator(ctx, opts.Simulator)
	}
}

// deviceNotFound prints the alternatives and returns the error to stop on.
func (r *Runner) deviceNotFound(ctx context.Context, by, query string, devices []device.Device) error {
	l := log.FromContext(ctx)

	alternatives := device.Suggest(devices, query, 0)
	if len(alternatives) > 0 {
		l.Println("Choose one of the following:")
		l.Printf("%s", static.DeviceTable(alternatives))
	}
	return &NotFoundError{Kind: "device", By: by, Query: query, Alternatives: alternatives}
}

func (r *Runner) selectSimulator(ctx context.Context, name string) (destination, error) {
	l := log.FromContext(ctx)

	data, err := r.Tools.ListSimulators(ctx)
	if err != nil {
		return destination{}, fmt.Errorf("%w: %v", ErrSimulatorList, err)
	}
	sims, err := device.ParseSimulators(data)
	if err != nil {
		return destination{}, fmt.Errorf("%w: %v", ErrSimulatorList, err)
	}

	sim, ok := device.FindSimulator(sims, name)
	if !ok {
		available := make([]device.Device, len(sims))
		for i, s := range sims {
			available[i] = s.Device
		}
		alternatives := device.Suggest(available, name, 5)
		if len(alternatives) > 0 {
			l.Println("Available simulators include:")
			l.Printf("%s", static.DeviceTable(alternatives))
		}
		return destination{}, &NotFoundError{Kind: "simulator", Query: name, Alternatives: alternatives}
	}

	if sim.Booted {
		if name != "" && sim.Name != name {
			l.Printf("Warning: %s is already booted, using it instead of %s\n", sim.FormattedName(), name)
		}
	} else {
		l.Printf("Launching %s...\n", sim.FormattedName())
		if err := r.Tools.BootSimulator(ctx, sim.UDID); err != nil {
			l.Debug("simulator boot failed", "udid", sim.UDID, "err", err)
		}
	}
	return destination{udid: sim.UDID, name: sim.Name}, nil
}

func (r *Runner) installOnSimulator(ctx context.Context, dest destination, appPath string) error {
	l := log.FromContext(ctx)

	l.Printf("Installing %s\n", appPath)
	if err := r.Tools.InstallOnSimulator(ctx, dest.udid, appPath); err != nil {
		return fmt.Errorf("install %s: %w", appPath, err)
	}

	bundleID, err := r.Tools.BundleID(ctx, appPath)
	if err != nil {
		return err
	}

	l.Printf("Launching %s\n", bundleID)
	if err := r.Tools.LaunchOnSimulator(ctx, dest.udid, bundleID); err != nil {
		return fmt.Errorf("launch %s: %w", bundleID, err)
	}
	return nil
}

func (r *Runner) installOnDevice(ctx context.Context, dest destination, appPath string) error {
	l := log.FromContext(ctx)

	if !r.Tools.HasDeviceInstaller() {
		l.Println()
		l.Println("** INSTALLATION FAILED **")
		l.Println("Make sure you have ios-deploy installed globally.")
		l.Println(`(e.g "npm install -g ios-deploy")`)
		return ErrInstallerMissing
	}

	l.Printf("installing and launching your app on %s...\n", dest.name)
	if err := r.Tools.InstallOnDevice(ctx, dest.udid, appPath); err != nil {
		l.Println("** INSTALLATION FAILED **")
		return fmt.Errorf("ios-deploy: %w", err)
	}
	l.Println("** INSTALLATION SUCCEEDED **")
	return nil
}
