package runner

import (
	"context"

	"github.com/raphi011/runios/internal/cmd"
	"github.com/raphi011/runios/internal/xcode"
)

// Toolchain is every external program a run touches.
type Toolchain interface {
	// ListDevices returns the raw `instruments -s` listing.
	ListDevices(ctx context.Context) (string, error)
	// ListSimulators returns `simctl list --json devices` output.
	ListSimulators(ctx context.Context) ([]byte, error)
	BootSimulator(ctx context.Context, udid string) error
	// Build runs xcodebuild in dir.
	Build(ctx context.Context, dir string, t xcode.Target) (xcode.Result, error)
	BundleID(ctx context.Context, appPath string) (string, error)
	InstallOnSimulator(ctx context.Context, udid, appPath string) error
	LaunchOnSimulator(ctx context.Context, udid, bundleID string) error
	// HasDeviceInstaller reports whether ios-deploy is installed.
	HasDeviceInstaller() bool
	// InstallOnDevice installs and launches appPath with ios-deploy.
	InstallOnDevice(ctx context.Context, udid, appPath string) error
	// RunScript runs path attached to the terminal.
	RunScript(ctx context.Context, path string, args []string) error
}

// XcrunToolchain is the Toolchain of a machine with Xcode installed.
type XcrunToolchain struct {
	// Verbose shows the raw xcodebuild log instead of xcpretty's.
	Verbose bool
}

var _ Toolchain = (*XcrunToolchain)(nil)

func (x *XcrunToolchain) ListDevices(ctx context.Context) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "xcrun", "instruments", "-s")
	return string(out), err
}

func (x *XcrunToolchain) ListSimulators(ctx context.Context) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "xcrun", "simctl", "list", "--json", "devices")
}

func (x *XcrunToolchain) BootSimulator(ctx context.Context, udid string) error {
	return cmd.RunContext(ctx, "", "xcrun", "simctl", "boot", udid)
}

func (x *XcrunToolchain) Build(ctx context.Context, dir string, t xcode.Target) (xcode.Result, error) {
	b := &xcode.Builder{Dir: dir, Verbose: x.Verbose}
	return b.Build(ctx, t)
}

func (x *XcrunToolchain) BundleID(ctx context.Context, appPath string) (string, error) {
	return xcode.BundleID(ctx, "", appPath)
}

func (x *XcrunToolchain) InstallOnSimulator(ctx context.Context, udid, appPath string) error {
	return cmd.InheritContext(ctx, "", nil, "xcrun", "simctl", "install", udid, appPath)
}

func (x *XcrunToolchain) LaunchOnSimulator(ctx context.Context, udid, bundleID string) error {
	return cmd.InheritContext(ctx, "", nil, "xcrun", "simctl", "launch", udid, bundleID)
}

func (x *XcrunToolchain) HasDeviceInstaller() bool {
	return cmd.Available("ios-deploy")
}

func (x *XcrunToolchain) InstallOnDevice(ctx context.Context, udid, appPath string) error {
	return cmd.InheritContext(ctx, "", nil, "ios-deploy", "--bundle", appPath, "--id", udid, "--justlaunch")
}

func (x *XcrunToolchain) RunScript(ctx context.Context, path string, args []string) error {
	return cmd.InheritContext(ctx, "", nil, path, args...)
}
