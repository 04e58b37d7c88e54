package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/stratcalc/internal/config"
	"github.com/githubnext/stratcalc/internal/logger"
	"github.com/githubnext/stratcalc/internal/prompt"
)

// runCLI executes a fresh root command with stdin and returns what it printed
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Keep the caller's environment out of the resolved config
	t.Setenv(envLocale, "")
	t.Setenv(envStrict, "")
	t.Setenv(envLogDir, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func requireExitOutcome(t *testing.T, err error, want prompt.Outcome) {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, want, exitErr.Outcome)
}

// captureStream swaps *stream for a pipe while f runs and returns what was written
func captureStream(stream **os.File, f func()) string {
	old := *stream
	r, w, _ := os.Pipe()
	*stream = w

	f()

	w.Close()
	*stream = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommandScenarios(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		args        []string
		wantLine    string
		wantOutcome prompt.Outcome
	}{
		{
			name:        "sum",
			stdin:       "sum\n3\n4\n",
			wantLine:    "Result: 7",
			wantOutcome: prompt.OutcomeOK,
		},
		{
			name:        "division truncates",
			stdin:       "div\n9\n3\n",
			wantLine:    "Result: 3",
			wantOutcome: prompt.OutcomeOK,
		},
		{
			name:        "subtraction to negative",
			stdin:       "sub\n2\n10\n",
			wantLine:    "Result: -8",
			wantOutcome: prompt.OutcomeOK,
		},
		{
			name:        "unknown operation",
			stdin:       "foo\n1\n2\n",
			wantLine:    `Invalid operation: "foo"`,
			wantOutcome: prompt.OutcomeInvalidOperation,
		},
		{
			name:        "division by zero",
			stdin:       "div\n5\n0\n",
			wantLine:    "Error: division by zero",
			wantOutcome: prompt.OutcomeDivisionByZero,
		},
		{
			name:        "lenient parse treats garbage as zero",
			stdin:       "sum\nabc\n5\n",
			wantLine:    "Result: 5",
			wantOutcome: prompt.OutcomeOK,
		},
		{
			name:        "strict parse rejects garbage",
			stdin:       "sum\nabc\n5\n",
			args:        []string{"--strict"},
			wantLine:    `Invalid number: "abc"`,
			wantOutcome: prompt.OutcomeInvalidInput,
		},
		{
			name:        "portuguese locale",
			stdin:       "mult\n6\n7\n",
			args:        []string{"--locale", "pt"},
			wantLine:    "Resultado: 42",
			wantOutcome: prompt.OutcomeOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.stdin, tt.args...)

			assert.Contains(t, out, tt.wantLine+"\n")
			if tt.wantOutcome.Computed() {
				assert.NoError(t, err)
			} else {
				requireExitOutcome(t, err, tt.wantOutcome)
			}
		})
	}
}

func TestRootCommandPromptsWhenPiped(t *testing.T) {
	out, err := runCLI(t, "sum\n1\n1\n")
	require.NoError(t, err)

	// Piped input is not echoed, so each prompt gets its own line
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Choose operation (sum, sub, mult, div): ", lines[0])
	assert.Equal(t, "Enter first number: ", lines[1])
	assert.Equal(t, "Enter second number: ", lines[2])
	assert.Equal(t, "Result: 2", lines[3])
}

func TestRootCommandEmptyInput(t *testing.T) {
	out, err := runCLI(t, "")
	requireExitOutcome(t, err, prompt.OutcomeInvalidOperation)
	assert.Contains(t, out, `Invalid operation: ""`)
}

func TestRootCommandRejectsArguments(t *testing.T) {
	_, err := runCLI(t, "", "sum")
	require.Error(t, err)

	var exitErr *ExitError
	assert.NotErrorAs(t, err, &exitErr)
}

func TestRootCommandConfigFile(t *testing.T) {
	path := writeFile(t, "stratcalc.toml", `
locale = "pt"
strict_input = true
`)

	t.Run("config applies", func(t *testing.T) {
		out, err := runCLI(t, "sum\nx\n1\n", "--config", path)
		requireExitOutcome(t, err, prompt.OutcomeInvalidInput)
		assert.Contains(t, out, "Número inválido")
	})

	t.Run("flags override config", func(t *testing.T) {
		out, err := runCLI(t, "sum\nx\n1\n", "-c", path, "--locale", "en", "--strict=false")
		require.NoError(t, err)
		assert.Contains(t, out, "Result: 1")
	})
}

func TestRootCommandInvalidConfig(t *testing.T) {
	path := writeFile(t, "bad.toml", `locale = "fr"`)

	_, err := runCLI(t, "sum\n1\n2\n", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	var exitErr *ExitError
	assert.NotErrorAs(t, err, &exitErr)
}

func TestRootCommandEnvOverrides(t *testing.T) {
	t.Run("environment variable", func(t *testing.T) {
		var out bytes.Buffer
		t.Setenv(envLocale, "pt")
		t.Setenv(envStrict, "")
		t.Setenv(envLogDir, "")

		cmd := newRootCmd()
		cmd.SetIn(strings.NewReader("sum\n2\n2\n"))
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Resultado: 4")
	})

	t.Run("invalid strict value", func(t *testing.T) {
		t.Setenv(envLocale, "")
		t.Setenv(envLogDir, "")
		t.Setenv(envStrict, "sometimes")

		cmd := newRootCmd()
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), envStrict)
	})

	t.Run("env file", func(t *testing.T) {
		// Register cleanup for the variable, then unset it so godotenv can set it
		t.Setenv(envLocale, "")
		require.NoError(t, os.Unsetenv(envLocale))
		t.Setenv(envStrict, "")
		t.Setenv(envLogDir, "")

		envFile := writeFile(t, ".env", envLocale+"=pt\n")

		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetIn(strings.NewReader("sub\n5\n7\n"))
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--env", envFile})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Resultado: -2")
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := runCLI(t, "", "--env", filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load .env file")
	})
}

func TestRootCommandLogDir(t *testing.T) {
	logDir := t.TempDir()

	_, err := runCLI(t, "mult\n6\n7\n", "--log-dir", logDir)
	require.NoError(t, err)
	_, err = runCLI(t, "div\n1\n0\n", "--log-dir", logDir)
	requireExitOutcome(t, err, prompt.OutcomeDivisionByZero)

	logContent, err := os.ReadFile(filepath.Join(logDir, config.DefaultLogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "mult(6, 7) = 42")

	journal, err := os.ReadFile(filepath.Join(logDir, config.DefaultJournalFileName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(journal)), "\n")
	require.Len(t, lines, 2)

	var ok, failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))

	assert.Equal(t, "cli", ok["source"])
	assert.Equal(t, "mult", ok["operation"])
	assert.Equal(t, float64(42), ok["result"])

	assert.Equal(t, "div", failed["operation"])
	assert.NotContains(t, failed, "result")
	assert.Contains(t, failed["error"], "division by zero")
}

func TestRootCommandJournalDisabled(t *testing.T) {
	logDir := t.TempDir()
	path := writeFile(t, "stratcalc.toml", `
[journal]
enabled = false
`)

	_, err := runCLI(t, "sum\n1\n2\n", "-c", path, "--log-dir", logDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(logDir, config.DefaultLogFileName))
	assert.NoFileExists(t, filepath.Join(logDir, config.DefaultJournalFileName))
}

func TestOperationsCommand(t *testing.T) {
	out, err := runCLI(t, "", "operations")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for i, token := range []string{"sum", "sub", "mult", "div"} {
		assert.True(t, strings.HasPrefix(lines[i], token+" "), "line %d: %q", i, lines[i])
	}
	assert.Contains(t, lines[3], "truncated toward zero")
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "stratcalc"},
		{"zsh", "#compdef stratcalc"},
		{"fish", "complete -c stratcalc"},
		{"powershell", "stratcalc"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := runCLI(t, "", "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	t.Run("unsupported shell", func(t *testing.T) {
		_, err := runCLI(t, "", "completion", "tcsh")
		require.Error(t, err)
	})
}

func TestCompletionSkipsConfigLoading(t *testing.T) {
	// A broken config must not prevent generating completion scripts
	path := writeFile(t, "bad.toml", `locale = "fr"`)

	out, err := runCLI(t, "", "-c", path, "completion", "bash")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Outcome: prompt.OutcomeDivisionByZero}
	assert.Equal(t, "no result (division-by-zero)", err.Error())
}

func TestSetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { SetVersion(orig) })

	SetVersion("v1.2.3")
	assert.Equal(t, "v1.2.3", version)
	assert.Equal(t, "v1.2.3", rootCmd.Version)
}

func TestRootCommandLogDirFallbackKeepsStdoutClean(t *testing.T) {
	// A regular file where the directory should be makes the log dir unusable
	blocker := writeFile(t, "blocker", "x")

	var transcript string
	var err error
	var stderr string
	stdout := captureStream(&os.Stdout, func() {
		stderr = captureStream(&os.Stderr, func() {
			transcript, err = runCLI(t, "sum\n3\n4\n", "--log-dir", filepath.Join(blocker, "logs"))
		})
	})

	require.NoError(t, err)
	assert.Contains(t, transcript, "Result: 7\n")
	assert.NotContains(t, transcript, "[INFO]")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[INFO] [cli] sum(3, 4) = 7")
}

func TestRootCommandEnvFileEnablesDebug(t *testing.T) {
	// Registered first so it runs after DEBUG has been restored
	t.Cleanup(logger.Reconfigure)
	t.Setenv("DEBUG", "")
	require.NoError(t, os.Unsetenv("DEBUG"))
	logger.Reconfigure()

	envFile := writeFile(t, ".env", "DEBUG=calc:*\n")

	var out string
	var err error
	stderr := captureStream(&os.Stderr, func() {
		out, err = runCLI(t, "sum\n3\n4\n", "--env", envFile)
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Result: 7\n")
	assert.Equal(t, "calc:*", os.Getenv("DEBUG"))
	assert.Contains(t, stderr, "calc:calculator")
	assert.Contains(t, stderr, "Calculator configured with operation 'sum'")
	assert.NotContains(t, stderr, "cmd:root", "patterns still select namespaces")
}
