// Package version contains version information.
package version

// Version information for dbscripts, set via -ldflags at build time.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// TemplateContract versions the placeholder protocol shared with template authors:
// start templates mark the project name with the literal token "project1".
// Bump it if the token or substitution rules ever change.
const TemplateContract = "v1"

// GetVersion returns the full version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build metadata
func GetFullVersion() string {
	return Version + " (build: " + BuildDate + ", commit: " + shortCommit(GitCommit) + ", templates: " + TemplateContract + ")"
}

// shortCommit abbreviates full git hashes to 12 characters.
func shortCommit(commit string) string {
	if len(commit) == 40 {
		return commit[:12]
	}
	return commit
}
