package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelDebug LogLevel = "DEBUG"
)

// FileLogger writes leveled log lines to a file, or to stderr when the file
// cannot be opened. Stdout is never used: it carries the calculator
// transcript and, in mcp mode, the JSON-RPC stream.
type FileLogger struct {
	logFile     *os.File
	logger      *log.Logger
	mu          sync.Mutex
	logDir      string
	fileName    string
	useFallback bool
}

var (
	globalFileLogger *FileLogger
	globalLoggerMu   sync.RWMutex
)

// InitFileLogger initializes the global file logger.
// If the log file cannot be created the logger falls back to stderr and no
// error is returned.
func InitFileLogger(logDir, fileName string) error {
	fl := &FileLogger{
		logDir:   logDir,
		fileName: fileName,
	}

	file, err := openLogFile(logDir, fileName)
	if err != nil {
		log.Printf("WARNING: Failed to initialize log file: %v", err)
		log.Printf("WARNING: Falling back to stderr for logging")
		fl.useFallback = true
		fl.logger = log.New(os.Stderr, "", 0)
		setGlobalFileLogger(fl)
		return nil
	}

	fl.logFile = file
	fl.logger = log.New(file, "", 0)

	log.Printf("Logging to file: %s", filepath.Join(logDir, fileName))

	setGlobalFileLogger(fl)
	return nil
}

func setGlobalFileLogger(fl *FileLogger) {
	if err := swapGlobal(&globalLoggerMu, &globalFileLogger, fl); err != nil {
		log.Printf("WARNING: Failed to close previous log file: %v", err)
	}
}

// Close closes the log file
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	err := closeLogFile(fl.logFile, "file")
	fl.logFile = nil
	return err
}

// Log writes "[timestamp] [LEVEL] [category] message" and syncs the file
func (fl *FileLogger) Log(level LogLevel, category, format string, args ...any) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.logFile == nil && !fl.useFallback {
		return
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	message := fmt.Sprintf(format, args...)
	fl.logger.Printf("[%s] [%s] [%s] %s", timestamp, level, category, message)

	if fl.logFile != nil {
		if err := fl.logFile.Sync(); err != nil {
			// stderr, not the file logger, to avoid recursion
			log.Printf("WARNING: Failed to sync log file: %v", err)
		}
	}
}

func logGlobal(level LogLevel, category, format string, args ...any) {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()

	if globalFileLogger != nil {
		globalFileLogger.Log(level, category, format, args...)
	}
}

// LogInfo logs an informational message
func LogInfo(category, format string, args ...any) {
	logGlobal(LogLevelInfo, category, format, args...)
}

// LogWarn logs a warning message
func LogWarn(category, format string, args ...any) {
	logGlobal(LogLevelWarn, category, format, args...)
}

// LogError logs an error message
func LogError(category, format string, args ...any) {
	logGlobal(LogLevelError, category, format, args...)
}

// LogDebug logs a debug message
func LogDebug(category, format string, args ...any) {
	logGlobal(LogLevelDebug, category, format, args...)
}

// CloseGlobalLogger closes the global file logger
func CloseGlobalLogger() error {
	return swapGlobal(&globalLoggerMu, &globalFileLogger, nil)
}
