package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/githubnext/stratcalc/internal/config"
	"github.com/githubnext/stratcalc/internal/logger"
	"github.com/githubnext/stratcalc/internal/prompt"
	"github.com/githubnext/stratcalc/internal/tty"
)

// Environment variables that override the config file. Flags override both.
const (
	envLocale = "STRATCALC_LOCALE"
	envStrict = "STRATCALC_STRICT"
	envLogDir = "STRATCALC_LOG_DIR"
)

var (
	debugLog = logger.New("cmd:root")
	version  = "dev" // Default version, overridden by SetVersion
	rootCmd  = newRootCmd()
)

// ExitError reports a run that finished cleanly but produced no result.
// The diagnostic has already been written, so Execute only sets the exit code.
type ExitError struct {
	Outcome prompt.Outcome
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return fmt.Sprintf("no result (%s)", e.Outcome)
}

// rootOptions holds flag values and the resolved configuration
type rootOptions struct {
	configFile string
	envFile    string
	locale     string
	strict     bool
	logDir     string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "stratcalc",
		Short:   "Integer calculator with sum, sub, mult and div",
		Version: version,
		Long: `stratcalc asks for an operation (sum, sub, mult or div) and two integers,
then prints the result.

Numbers that cannot be parsed are treated as 0 unless --strict is given.
A run that does not produce a result (unknown operation, division by zero,
rejected number) prints a diagnostic and exits with status 1.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		RunE:              o.run,
	}

	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "Path to TOML config file")
	cmd.PersistentFlags().StringVar(&o.envFile, "env", "", "Path to .env file to load environment variables")
	cmd.PersistentFlags().StringVar(&o.logDir, "log-dir", "", "Directory for the log file and calculation journal (env: "+envLogDir+")")
	cmd.Flags().StringVar(&o.locale, "locale", "", "Language of prompts: en or pt (env: "+envLocale+")")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Reject numbers that cannot be parsed instead of using 0 (env: "+envStrict+")")

	cmd.AddCommand(newMCPCmd(o))
	cmd.AddCommand(newOperationsCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// setup loads the .env file and configuration, then starts file logging
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	if o.envFile != "" {
		log.Printf("Loading environment from %s...", o.envFile)
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		// Debug loggers were created before the file could set DEBUG
		logger.Reconfigure()
	}

	cfg := config.Default()
	if o.configFile != "" {
		log.Printf("Reading configuration from %s...", o.configFile)
		loaded, err := config.LoadFromFile(o.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return err
	}
	o.applyFlagOverrides(cmd, cfg)
	o.cfg = cfg

	debugLog.Printf("Resolved config: locale=%s strict=%v log_dir=%q", cfg.Locale, cfg.StrictInput, cfg.LogDir)

	if cfg.LogDir != "" {
		if err := logger.InitFileLogger(cfg.LogDir, config.DefaultLogFileName); err != nil {
			return fmt.Errorf("failed to initialize file logger: %w", err)
		}
		if cfg.JournalActive() {
			if err := logger.InitJSONLLogger(cfg.LogDir, cfg.Journal.FileName); err != nil {
				log.Printf("WARNING: calculation journal disabled: %v", err)
			}
		}
	}
	return nil
}

// applyEnvOverrides copies STRATCALC_* variables into cfg
func applyEnvOverrides(cfg *config.Config) error {
	if v := os.Getenv(envLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(envLogDir); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv(envStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", envStrict, v, err)
		}
		cfg.StrictInput = strict
	}
	return nil
}

// applyFlagOverrides copies explicitly set flags into cfg
func (o *rootOptions) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = o.locale
	}
	if flags.Changed("strict") {
		cfg.StrictInput = o.strict
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = o.logDir
	}
}

func closeLogs() {
	if err := logger.CloseJSONLLogger(); err != nil {
		log.Printf("WARNING: failed to close calculation journal: %v", err)
	}
	if err := logger.CloseGlobalLogger(); err != nil {
		log.Printf("WARNING: failed to close log file: %v", err)
	}
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	defer closeLogs()

	messages, err := prompt.MessagesFor(o.cfg.Locale)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := cmd.InOrStdin()
	session := &prompt.Session{
		Source:             prompt.NewScannerSource(in),
		Sink:               prompt.NewWriterSink(cmd.OutOrStdout()),
		Messages:           messages,
		Strict:             o.cfg.StrictInput,
		NewlineAfterPrompt: !tty.IsTerminal(in),
	}

	logger.LogInfo("cli", "Interactive session started (locale=%s, strict=%v)", o.cfg.Locale, o.cfg.StrictInput)
	outcome, err := session.Run(ctx)
	if err != nil {
		return err
	}

	debugLog.Printf("Session finished with outcome %s", outcome)
	if !outcome.Computed() {
		return &ExitError{Outcome: outcome}
	}
	return nil
}

// commandContext returns the command's context, or Background if none was set
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
