package version

import "fmt"

// Set via -ldflags at build time.
var (
	BuildDate   string
	BuildCommit string
)

// String returns a human-readable build string.
func String() string {
	return fmt.Sprintf(
		"spaceship-server build[%s] commit[%s]",
		coalesce(BuildDate, "dev"),
		coalesce(BuildCommit, "unknown"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
