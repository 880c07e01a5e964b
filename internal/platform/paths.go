package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory under the user config dir that holds
// application data
const AppDirName = "ai-toolbox"

// ExpandPath resolves user-facing path notation into an absolute path:
// a leading "~" becomes the home directory, $VAR and ${VAR} use Unix
// environment expansion, and %VAR% uses Windows-style expansion.
// An empty input stays empty.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	path = expandWindowsEnv(path)
	path = os.ExpandEnv(path)

	return filepath.Clean(path)
}

// expandWindowsEnv replaces %VAR% references with their environment
// values in a single pass. Unset variables are left in place so the
// caller sees what failed to resolve; substituted values are not
// rescanned.
func expandWindowsEnv(path string) string {
	if strings.IndexByte(path, '%') < 0 {
		return path
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(path, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(path[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1

		b.WriteString(path[:start])
		name := path[start+1 : end]
		if value := os.Getenv(name); value != "" {
			b.WriteString(value)
		} else {
			b.WriteString(path[start : end+1])
		}
		path = path[end+1:]
	}
	b.WriteString(path)
	return b.String()
}

// DataDir returns the directory where the application keeps its
// database and state, creating it when missing
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	dataDir := filepath.Join(configDir, AppDirName)
	if err := CreateDirectoryIfNotExists(dataDir); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}

// DefaultLocalBackupDir returns the suggested directory for local
// backups, inside the user's documents area
func DefaultLocalBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Documents", "ai-toolbox-backups")
}
