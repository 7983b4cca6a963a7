package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("fnkit %s (commit=%s, date=%s)", Version, Commit, Date)
}
