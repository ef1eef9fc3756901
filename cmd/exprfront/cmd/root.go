package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	"github.com/msto63/exprfront/foundation/exprlang"
	"github.com/msto63/exprfront/pkg/core/config"
	coreGrpc "github.com/msto63/exprfront/pkg/core/grpc"
	"github.com/msto63/exprfront/pkg/core/logging"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
	noColor  bool

	appConfig *config.Config
	logger    *mdwlog.Logger
)

// errDiagnostics signals a run that completed but reported diagnostics.
// It maps to exit status 1 without an extra error line.
var errDiagnostics = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "exprfront",
	Short: "exprfront - Expression language front end",
	Long: `exprfront tokenizes and parses a small expression language with
let declarations, assignments and calls with named arguments.

Commands:
  parse    - parse a file, stdin or an inline expression
  tokens   - dump the token stream
  repl     - interactive shell
  serve    - gRPC parse service
  version  - build information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.toml or $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging with caller information")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup loads the configuration and builds the logger shared by all commands
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, err := mdwlog.ParseLevel(logLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		cfg.General.LogLevel = logLevel
	}
	appConfig = cfg

	logCfg := logging.FromConfig(cfg.General.Name, cfg.General, verbose)
	logCfg.Output = cmd.ErrOrStderr()
	logger = logging.NewLogger(logCfg)
	mdwlog.SetDefault(logger)
	coreGrpc.SetLogger(logging.Wrap("grpc", logger))

	switch {
	case noColor:
		lipgloss.SetColorProfile(termenv.Ascii)
	case cfg.Output.Color:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
	return nil
}

// newEngine creates an engine honoring the configured parser limits
func newEngine() *exprlang.Engine {
	return exprlang.NewEngine(exprlang.Options{
		Logger:         logger,
		MaxInputLength: appConfig.Parser.MaxInputLength,
	})
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
