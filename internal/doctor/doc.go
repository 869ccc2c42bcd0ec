// Package doctor diagnoses the environment runios depends on.
//
// The checks are grouped into three categories:
//
//   - [CategoryTools]: xcodebuild, xcrun and PlistBuddy are required;
//     xcpretty and ios-deploy are optional and only produce warnings.
//
//   - [CategoryProfile]: the development team cache must be readable JSON
//     and every team ID in it must have 10 characters.
//
//   - [CategoryProject]: the project folder must exist and contain an
//     Xcode workspace or project.
//
// Profile issues carry a fix action that [Run] applies when asked to.
// Missing tools and projects cannot be fixed by runios.
//
// # Usage
//
//	err := doctor.Run(ctx, w, opts, false) // check only
//	err := doctor.Run(ctx, w, opts, true)  // check and fix
package doctor
