// Package team resolves the development team ID passed to xcodebuild.
//
// A team can be requested three ways: not at all, as "use my saved default",
// or as an explicit value. Explicit values of the right length are used as
// they are. Everything else ends up in an interactive resolution:
//
//	ChooseSource -> pick one of the remembered teams, or
//	Search       -> scan a directory for project files and pick a result, or
//	Manual       -> type an ID (re-prompted until it has 10 characters)
//	ConfirmSave  -> optionally remember the result as the default
//
// Explicit values with the wrong length are discarded, not rejected: they
// start the interactive resolution like a missing value would.
//
// The resolver never touches the profile file directly. It receives the
// loaded [profile.Profile], returns the updated copy and persists every
// change through a [Store].
package team
