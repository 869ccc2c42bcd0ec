package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryTools represents missing external programs.
	CategoryTools IssueCategory = "tools"
	// CategoryProfile represents problems with the team cache file.
	CategoryProfile IssueCategory = "profile"
	// CategoryProject represents a missing or empty project folder.
	CategoryProject IssueCategory = "project"
)

// Severity says whether an issue stops runios from working.
type Severity int

const (
	// SeverityWarn issues degrade a run but do not stop it.
	SeverityWarn Severity = iota
	// SeverityError issues make runs fail.
	SeverityError
)

// Fix actions understood by fixIssues.
const (
	FixNone         = ""
	FixResetProfile = "reset_profile"
	FixClearDefault = "clear_default"
	FixDropInvalid  = "drop_invalid"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // tool name, file path or team ID
	Description string        // human-readable description
	FixAction   string        // what --fix would do, FixNone if nothing
	Category    IssueCategory // issue category
	Severity    Severity
}

// IssueStats tracks counts by category.
type IssueStats struct {
	ToolsFound    int // tools found on PATH
	ToolsMissing  int // required tools missing
	ToolsOptional int // optional tools missing
	KnownTeams    int // team IDs in the cache
	ProfileIssues int // cache problems
	ProjectIssues int // project folder problems
}
