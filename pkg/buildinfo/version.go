// Package buildinfo holds version details stamped into the taggraph binary
// at link time, e.g. with -X github.com/matzehuels/taggraph/pkg/buildinfo.Version=v0.3.0.
package buildinfo

import "fmt"

// Values are replaced by the release build; local builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
