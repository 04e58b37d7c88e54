// Package prompt runs one interactive calculation: it asks for an operation
// and two numbers on a LineSource, computes the answer with internal/calc and
// writes either a result line or a diagnostic to a LineSink.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/githubnext/stratcalc/internal/calc"
	"github.com/githubnext/stratcalc/internal/logger"
)

var logSession = logger.New("prompt:session")

// Outcome classifies how a session ended
type Outcome int

const (
	// OutcomeOK means a result line was written
	OutcomeOK Outcome = iota
	// OutcomeInvalidOperation means the operation token was not recognized
	OutcomeInvalidOperation
	// OutcomeDivisionByZero means div was requested with a zero divisor
	OutcomeDivisionByZero
	// OutcomeInvalidInput means a number failed to parse in strict mode
	OutcomeInvalidInput
	// OutcomeNotConfigured means the calculator had no operation bound
	OutcomeNotConfigured
)

// String returns a short name for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalidOperation:
		return "invalid-operation"
	case OutcomeDivisionByZero:
		return "division-by-zero"
	case OutcomeInvalidInput:
		return "invalid-input"
	case OutcomeNotConfigured:
		return "not-configured"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Computed reports whether the session produced a result
func (o Outcome) Computed() bool {
	return o == OutcomeOK
}

// Session holds the collaborators of one interactive calculation
type Session struct {
	Source   LineSource
	Sink     LineSink
	Messages Messages

	// Strict rejects unparsable numbers instead of treating them as 0
	Strict bool

	// NewlineAfterPrompt ends each prompt with a newline. Useful when input
	// is piped and therefore not echoed by a terminal.
	NewlineAfterPrompt bool

	// Registry overrides the built-in operations when non-nil
	Registry *calc.Registry
}

// NewSession creates a session with English messages
func NewSession(source LineSource, sink LineSink) *Session {
	m, _ := MessagesFor(DefaultLocale)
	return &Session{
		Source:   source,
		Sink:     sink,
		Messages: m,
	}
}

// Run asks for the operation and both numbers, then writes the result or a
// diagnostic. The returned error is only for I/O failures and cancellation;
// calculation failures are reported through the Outcome.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	token, err := s.ask(ctx, s.Messages.OperationPrompt)
	if err != nil {
		return OutcomeNotConfigured, err
	}
	firstInput, err := s.ask(ctx, s.Messages.FirstPrompt)
	if err != nil {
		return OutcomeNotConfigured, err
	}
	secondInput, err := s.ask(ctx, s.Messages.SecondPrompt)
	if err != nil {
		return OutcomeNotConfigured, err
	}

	logSession.Printf("Read operation=%q first=%q second=%q", token, firstInput, secondInput)

	calculator, err := calc.NewWithRegistry(token, s.Registry)
	if err != nil {
		logger.LogWarn("cli", "Operation %q rejected: %v", token, err)
		if errors.Is(err, calc.ErrUnrecognizedOperation) {
			return OutcomeInvalidOperation, s.writeLine(fmt.Sprintf(s.Messages.InvalidOperationFormat, token))
		}
		return OutcomeNotConfigured, s.writeLine(s.Messages.NotConfigured)
	}

	first, second, bad, err := s.parseOperands(firstInput, secondInput)
	if err != nil {
		logger.LogWarn("cli", "Rejected operand: %v", err)
		return OutcomeInvalidInput, s.writeLine(fmt.Sprintf(s.Messages.InvalidInputFormat, bad))
	}

	result, err := calculator.Calculate(first, second)
	logger.LogCalculationJSONL("cli", calculator.Kind().String(), first, second, result, err)
	if err != nil {
		logger.LogError("cli", "%s(%d, %d) failed: %v", calculator.Kind(), first, second, err)
		switch {
		case errors.Is(err, calc.ErrDivisionByZero):
			return OutcomeDivisionByZero, s.writeLine(s.Messages.DivisionByZero)
		case errors.Is(err, calc.ErrNotConfigured):
			return OutcomeNotConfigured, s.writeLine(s.Messages.NotConfigured)
		default:
			return OutcomeNotConfigured, err
		}
	}

	logger.LogInfo("cli", "%s(%d, %d) = %d", calculator.Kind(), first, second, result)
	return OutcomeOK, s.writeLine(fmt.Sprintf(s.Messages.ResultFormat, result))
}

// parseOperands applies the lenient or strict policy. On failure it returns
// the offending raw input.
func (s *Session) parseOperands(firstInput, secondInput string) (int64, int64, string, error) {
	if !s.Strict {
		return ParseOperand(firstInput), ParseOperand(secondInput), "", nil
	}

	first, err := ParseOperandStrict(firstInput)
	if err != nil {
		return 0, 0, firstInput, err
	}
	second, err := ParseOperandStrict(secondInput)
	if err != nil {
		return 0, 0, secondInput, err
	}
	return first, second, "", nil
}

// ask writes a prompt and reads one line. End of input yields an empty line.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := prompt
	if s.NewlineAfterPrompt {
		text += "\n"
	}
	if _, err := s.Sink.WriteString(text); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := s.Source.ReadLine()
	if errors.Is(err, io.EOF) {
		logSession.Print("End of input, using empty line")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

func (s *Session) writeLine(line string) error {
	if _, err := s.Sink.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
