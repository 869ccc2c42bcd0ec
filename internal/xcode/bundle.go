package xcode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raphi011/runios/internal/cmd"
)

// PlistBuddy is the tool used to read Info.plist values.
const PlistBuddy = "/usr/libexec/PlistBuddy"

// BuildPath returns the .app bundle path for productName, relative to the
// project directory.
func BuildPath(configuration, productName string, device bool) string {
	if configuration == "" {
		configuration = DefaultConfiguration
	}
	sdk := "iphonesimulator"
	if device {
		sdk = "iphoneos"
	}
	return filepath.Join(DerivedDataPath, "Build", "Products", configuration+"-"+sdk, productName+".app")
}

// BundleID reads CFBundleIdentifier from the Info.plist inside appPath.
// dir is the project directory appPath is relative to.
func BundleID(ctx context.Context, dir, appPath string) (string, error) {
	plist := filepath.Join(appPath, "Info.plist")
	out, err := cmd.OutputContext(ctx, dir, PlistBuddy, "-c", "Print:CFBundleIdentifier", plist)
	if err != nil {
		return "", fmt.Errorf("read bundle identifier from %s: %w", plist, err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("%s has no CFBundleIdentifier", plist)
	}
	return id, nil
}
