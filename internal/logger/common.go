package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// openLogFile opens logDir/fileName for appending, creating both as needed.
// Each logger decides for itself what an error means (fallback or no log).
func openLogFile(logDir, fileName string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(logDir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// closeLogFile flushes and closes file. A failed flush is only reported;
// the file is closed either way.
func closeLogFile(file *os.File, loggerName string) error {
	if file == nil {
		return nil
	}

	if err := file.Sync(); err != nil {
		log.Printf("WARNING: %s log not flushed before close: %v", loggerName, err)
	}
	return file.Close()
}

// swapGlobal installs next as the global logger guarded by mu and closes the
// one it replaces. Passing nil clears the global.
func swapGlobal[T interface {
	comparable
	Close() error
}](mu *sync.RWMutex, global *T, next T) error {
	mu.Lock()
	defer mu.Unlock()

	prev := *global
	*global = next

	var none T
	if prev == none {
		return nil
	}
	return prev.Close()
}
