// Package fs provides file-backed decorators for diffinsight services.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns where analyzer responses are cached: a
// diffinsight/responses directory under the user cache directory
// ($XDG_CACHE_HOME or ~/.cache on Linux), or under the system temp
// directory when the user has none.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "diffinsight", "responses")
}
