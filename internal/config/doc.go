// Package config handles loading and validation of runios configuration.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (applied by the CLI, not here)
//   - RUNIOS_SIMULATOR / RUNIOS_PROJECT_PATH env vars
//   - .runios.toml in the working directory (see [LoadLocal])
//   - ~/.config/runios/config.toml
//   - Default values
//
// Environment overrides are applied by [Load]; callers merging a local
// file on top re-apply them with [Config.WithEnv] so the env still wins.
//
// # Key Settings
//
//   - project_path: directory holding the Xcode project (default "ios")
//   - simulator: simulator name when no device is requested (default "iPhone 6")
//   - configuration: xcodebuild configuration (default "Debug")
//   - scheme: scheme to build (default: project file name)
//   - packager: whether the build may start the JS packager (default true)
//   - [theme]: UI colors
package config
