package config

// MergeLocal merges a local per-project config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Theme is global-only and survives the shallow copy.
	merged := *global

	if local.ProjectPath != "" {
		merged.ProjectPath = local.ProjectPath
	}
	if local.Simulator != "" {
		merged.Simulator = local.Simulator
	}
	if local.Configuration != "" {
		merged.Configuration = local.Configuration
	}
	if local.Scheme != "" {
		merged.Scheme = local.Scheme
	}
	if local.Packager != nil {
		merged.Packager = *local.Packager
	}

	return &merged
}
