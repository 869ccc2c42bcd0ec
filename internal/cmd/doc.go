// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Every
// invocation is traced through the context logger in verbose mode.
//
// # Usage
//
//	// For commands whose output is not needed:
//	if err := cmd.RunContext(ctx, "", "xcrun", "simctl", "boot", udid); err != nil {
//	    // err contains stderr output if available
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, "", "xcrun", "simctl", "list", "--json", "devices")
//
//	// For commands the user should watch (install, launch):
//	err := cmd.InheritContext(ctx, "", nil, "xcrun", "simctl", "launch", udid, bundleID)
//
// # Design Notes
//
// runios shells out to xcodebuild, xcrun, PlistBuddy and ios-deploy rather
// than reimplementing any of them. The Xcode toolchain has no Go bindings and
// the CLIs are the stable interface Apple supports.
package cmd
