package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// JSONLLogger writes one JSON object per line to a journal file
type JSONLLogger struct {
	logFile  *os.File
	mu       sync.Mutex
	logDir   string
	fileName string
	encoder  *json.Encoder
}

var (
	globalJSONLLogger *JSONLLogger
	globalJSONLMu     sync.RWMutex
)

// CalculationRecord is a single journal entry describing one calculation.
// Result is omitted when the calculation did not produce an answer.
type CalculationRecord struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"` // "cli" or "mcp"
	Operation string `json:"operation"`
	First     int64  `json:"first"`
	Second    int64  `json:"second"`
	Result    *int64 `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

// InitJSONLLogger initializes the global calculation journal.
// Unlike InitFileLogger there is no fallback: an error means no journal.
func InitJSONLLogger(logDir, fileName string) error {
	file, err := openLogFile(logDir, fileName)
	if err != nil {
		return err
	}

	jl := &JSONLLogger{
		logFile:  file,
		logDir:   logDir,
		fileName: fileName,
		encoder:  json.NewEncoder(file),
	}
	if err := swapGlobal(&globalJSONLMu, &globalJSONLLogger, jl); err != nil {
		log.Printf("WARNING: Failed to close previous journal: %v", err)
	}
	return nil
}

// Close closes the journal file
func (jl *JSONLLogger) Close() error {
	jl.mu.Lock()
	defer jl.mu.Unlock()

	err := closeLogFile(jl.logFile, "JSONL")
	jl.logFile = nil
	return err
}

// LogRecord appends a record and flushes it to disk
func (jl *JSONLLogger) LogRecord(record *CalculationRecord) error {
	jl.mu.Lock()
	defer jl.mu.Unlock()

	if jl.logFile == nil {
		return fmt.Errorf("JSONL logger not initialized")
	}

	if err := jl.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := jl.logFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}

	return nil
}

// CloseJSONLLogger closes the global calculation journal
func CloseJSONLLogger() error {
	return swapGlobal(&globalJSONLMu, &globalJSONLLogger, nil)
}

// LogCalculationJSONL records a calculation in the global journal, if one is
// initialized. A non-nil calcErr means the calculation produced no result.
func LogCalculationJSONL(source, operation string, first, second, result int64, calcErr error) {
	globalJSONLMu.RLock()
	defer globalJSONLMu.RUnlock()

	if globalJSONLLogger == nil {
		return
	}

	record := &CalculationRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Source:    source,
		Operation: operation,
		First:     first,
		Second:    second,
	}
	if calcErr != nil {
		record.Error = calcErr.Error()
	} else {
		record.Result = &result
	}

	// Best effort; a journal failure never affects the calculation
	if err := globalJSONLLogger.LogRecord(record); err != nil {
		LogWarn("journal", "Failed to write calculation record: %v", err)
	}
}
