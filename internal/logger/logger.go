package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables configuring the log file path and minimum level.
const (
	envLogPath  = "UIPATH_MCP_LOG"
	envLogLevel = "UIPATH_MCP_LOG_LEVEL"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel parses a level name, case-insensitively. Unknown names yield
// LevelInfo and false.
func ParseLevel(s string) (Level, bool) {
	for l, n := range levelNames {
		if strings.EqualFold(s, n) {
			return l, true
		}
	}
	return LevelInfo, false
}

var (
	mu            sync.Mutex
	std           *log.Logger
	logFile       *os.File
	minLevel      = LevelInfo
	isInitialized bool
)

// InitFromEnv initializes the logger using UIPATH_MCP_LOG or a default path
// next to the executable. UIPATH_MCP_LOG_LEVEL sets the minimum level.
func InitFromEnv() error {
	if lvl, ok := ParseLevel(os.Getenv(envLogLevel)); ok {
		SetLevel(lvl)
	}
	path := os.Getenv(envLogPath)
	if path == "" {
		if exePath, err := os.Executable(); err == nil {
			path = filepath.Join(filepath.Dir(exePath), "uipath-mcp.log")
		} else {
			path = "./uipath-mcp.log"
		}
	}
	return Init(path)
}

// Init initializes the logger to write to the provided file path.
// It creates parent directories if needed and opens the file in append mode.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if isInitialized {
		return nil
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = f
	std = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	isInitialized = true
	return nil
}

// SetOutput redirects logging to w, closing any file opened by Init.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	std = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	isInitialized = true
}

// SetLevel sets the minimum level written.
func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// Close closes the underlying log file, if open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFile()
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	std = nil
	isInitialized = false
	return err
}

// Printf logs a formatted message at info level.
func Printf(format string, args ...any) { write(LevelInfo, format, args...) }

// Debugf logs diagnostic messages.
func Debugf(format string, args ...any) { write(LevelDebug, format, args...) }

// Infof logs informational messages.
func Infof(format string, args ...any) { write(LevelInfo, format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { write(LevelWarn, format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { write(LevelError, format, args...) }

func write(level Level, format string, args ...any) {
	mu.Lock()
	ready, enabled := std != nil, level >= minLevel
	mu.Unlock()
	if !enabled {
		return
	}
	if !ready {
		// Fallback: initialize with default if not already.
		_ = InitFromEnv()
	}

	mu.Lock()
	defer mu.Unlock()
	if std != nil {
		std.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
