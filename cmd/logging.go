package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LogDestination is where log output goes
type LogDestination int

const (
	LogToFile LogDestination = iota
	LogToStderr
)

// determineLogDestination picks the log destination for an OS. File paths
// are returned with a leading ~ for the user's home directory.
func determineLogDestination(goos string) (LogDestination, string) {
	switch goos {
	case "linux":
		return LogToFile, "~/.config/hero/debug.log"
	case "darwin":
		return LogToFile, "~/Library/Logs/hero.log"
	default:
		return LogToStderr, ""
	}
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenLog opens the log destination for goos, truncating an existing log
// file to prevent unbounded growth
func OpenLog(goos string) (io.WriteCloser, error) {
	dest, path := determineLogDestination(goos)
	if dest == LogToStderr {
		return nopCloser{os.Stderr}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path = expandHome(path, home)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
}
