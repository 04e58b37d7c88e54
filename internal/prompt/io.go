package prompt

import (
	"bufio"
	"io"
	"strings"
)

// LineSource supplies input one line at a time.
// ReadLine returns io.EOF once the input is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// LineSink receives output text
type LineSink interface {
	WriteString(s string) (int, error)
}

// ScannerSource reads lines from an io.Reader
type ScannerSource struct {
	scanner *bufio.Scanner
}

// NewScannerSource creates a LineSource reading from r
func NewScannerSource(r io.Reader) *ScannerSource {
	return &ScannerSource{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line without its line terminator
func (s *ScannerSource) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return strings.TrimRight(s.scanner.Text(), "\r"), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// WriterSink adapts an io.Writer to a LineSink
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a LineSink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteString writes s to the underlying writer
func (s *WriterSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}
