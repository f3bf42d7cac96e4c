// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2md/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBlobConnect returns hints for object-store connection errors.
// Detects container environments where localhost does not reach the host,
// and suggests the credential environment variables when they are unset.
func ForBlobConnect(endpoint string) string {
	var hints []string

	localhost := strings.Contains(endpoint, "localhost") ||
		strings.Contains(endpoint, "127.0.0.1")
	if localhost && IsInContainer() {
		hints = append(hints, "inside a container, localhost is not the host; use the service name or host.docker.internal")
	}

	if os.Getenv("HTML2MD_ACCESS_KEY") == "" || os.Getenv("HTML2MD_SECRET_KEY") == "" {
		hints = append(hints, "set HTML2MD_ACCESS_KEY and HTML2MD_SECRET_KEY or configure credentials in the config file")
	}

	hints = append(hints, "for plain-HTTP endpoints, pass --no-tls")

	return formatHints(hints)
}

// ForBucketNotFound returns a hint for missing-bucket errors.
func ForBucketNotFound(bucket string) string {
	return format("bucket " + bucket + " does not exist; pass --ensure-bucket to create it")
}

// ForFetch returns hints for page fetch errors.
func ForFetch() string {
	return format("check the URL is reachable; some sites require a browser-like --user-agent")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for slow pages or many images, raise --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-html2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-html2md) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-html2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
