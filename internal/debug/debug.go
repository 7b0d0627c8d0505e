// Package debug writes component-tagged diagnostics to stderr or a log file.
// Output is off unless enabled at build time or through SMELLSCAN_DEBUG, and
// is always off in MCP mode where stdout and stderr belong to the protocol.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EnableDebug is set with
// -ldflags "-X github.com/standardbeagle/smellscan/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// EnvVar turns output on at runtime when set to 1 or true.
const EnvVar = "SMELLSCAN_DEBUG"

// MCPMode is set by the mcp command before the server starts.
var MCPMode = false

// sink is the package-wide destination. file is non-nil only after
// InitDebugLogFile.
type sink struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
}

var std = &sink{out: os.Stderr}

// SetMCPMode toggles MCP mode.
func SetMCPMode(enabled bool) {
	std.mu.Lock()
	MCPMode = enabled
	std.mu.Unlock()
}

// SetDebugOutput replaces the destination; nil discards everything.
func SetDebugOutput(w io.Writer) {
	std.mu.Lock()
	std.out = w
	std.mu.Unlock()
}

// InitDebugLogFile points output at a new file in
// $TMPDIR/smellscan-debug-logs and returns its path. Pair with CloseDebugLog.
func InitDebugLogFile() (string, error) {
	dir := filepath.Join(os.TempDir(), "smellscan-debug-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}
	name := "debug-" + time.Now().Format("2006-01-02T150405") + ".log"
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	std.mu.Lock()
	std.file, std.out = f, f
	std.mu.Unlock()
	return path, nil
}

// CloseDebugLog closes the file opened by InitDebugLogFile and goes back to
// stderr. It is a no-op when no file is open.
func CloseDebugLog() error {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.file == nil {
		return nil
	}
	err := std.file.Close()
	std.file, std.out = nil, os.Stderr
	return err
}

func inMCPMode() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return MCPMode
}

// IsDebugEnabled reports whether Log and friends produce output.
func IsDebugEnabled() bool {
	if inMCPMode() {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	switch os.Getenv(EnvVar) {
	case "1", "true":
		return true
	}
	return false
}

// write emits one line under the sink lock so concurrent callers never
// interleave.
func (s *sink) write(tag, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		return
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(s.out, "[%s] %s", tag, msg)
}

// Printf writes an untagged debug line.
func Printf(format string, args ...interface{}) {
	if IsDebugEnabled() {
		std.write("DEBUG", fmt.Sprintf(format, args...))
	}
}

// Log writes a line tagged with component.
func Log(component, format string, args ...interface{}) {
	if IsDebugEnabled() {
		std.write("DEBUG:"+component, fmt.Sprintf(format, args...))
	}
}

func LogAnalysis(format string, args ...interface{}) { Log("ANALYSIS", format, args...) }

func LogScan(format string, args ...interface{}) { Log("SCAN", format, args...) }

func LogWatch(format string, args ...interface{}) { Log("WATCH", format, args...) }

func LogMCP(format string, args ...interface{}) { Log("MCP", format, args...) }

// Fatal records msg regardless of debug mode (outside MCP mode) and returns
// it as an error for the caller to propagate.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if !inMCPMode() {
		std.write("FATAL", msg)
	}
	return fmt.Errorf("fatal error: %s", msg)
}
