package runner

import (
	"errors"
	"fmt"

	"github.com/raphi011/runios/internal/device"
)

var (
	// ErrProjectNotFound means the project path does not exist and there
	// is no react-native-scripts to hand over to.
	ErrProjectNotFound = errors.New("iOS project folder not found. Are you sure this is a React Native project?")

	// ErrNoXcodeProject means the project path holds no .xcworkspace or .xcodeproj.
	ErrNoXcodeProject = errors.New("could not find Xcode project files in the project folder")

	// ErrSimulatorList means simctl failed or printed something unparsable.
	ErrSimulatorList = errors.New("could not parse the simulator list output")

	// ErrInstallerMissing means ios-deploy is not installed. The build has
	// already completed when this is returned.
	ErrInstallerMissing = errors.New(`ios-deploy not found, install it with "npm install -g ios-deploy"`)
)

// NotFoundError reports a device or simulator query without a match.
type NotFoundError struct {
	Kind         string // "device" or "simulator"
	By           string // "name" or "udid"; devices only
	Query        string
	Alternatives []device.Device
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Kind == "simulator":
		return fmt.Sprintf("could not find %s simulator", e.Query)
	case len(e.Alternatives) == 0:
		return "no iOS devices connected"
	case e.Query == device.Unspecified:
		return "more than one device connected, pass --device=NAME"
	default:
		return fmt.Sprintf("could not find device with the %s %q", e.By, e.Query)
	}
}
