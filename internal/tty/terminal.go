package tty

import (
	"golang.org/x/term"

	"github.com/githubnext/stratcalc/internal/logger"
)

var logTerminal = logger.New("tty:terminal")

// fder is implemented by *os.File
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether stream (typically os.Stdin or os.Stdout) is
// attached to a terminal. Streams without a file descriptor, such as pipes
// wrapped in buffers, are never terminals.
func IsTerminal(stream any) bool {
	f, ok := stream.(fder)
	if !ok {
		logTerminal.Printf("Stream %T has no file descriptor", stream)
		return false
	}

	isTerm := term.IsTerminal(int(f.Fd()))
	logTerminal.Printf("Stream fd=%d terminal=%v", f.Fd(), isTerm)
	return isTerm
}
