package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	parseServer "github.com/msto63/exprfront/internal/parsesvc/server"
	"github.com/msto63/exprfront/pkg/core/config"
	"github.com/msto63/exprfront/pkg/core/logging"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC parse service",
	Long: `Start the gRPC parse service (exprfront.v1.ParseService).

Host, port and timeouts come from the [server] section of the config file
and may be overridden by flags. With --watch the config file is watched
and a changed [parser] max_input_length is applied without a restart.

Examples:
  exprfront serve
  exprfront serve --port 9400
  exprfront serve --config configs/config.toml --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload parser limits when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveWatch && appConfig.Path() == "" {
		return fmt.Errorf("--watch needs a config file")
	}

	cfg := appConfig.Server
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv, err := parseServer.New(parseServer.Config{
		Host:             cfg.Host,
		Port:             cfg.Port,
		EnableReflection: cfg.EnableReflection,
		MaxRecvMsgSize:   cfg.MaxRecvMsgSize,
		MaxInputLength:   appConfig.Parser.MaxInputLength,
		RequestTimeout:   cfg.RequestTimeout.Duration,
		CacheSize:        cfg.CacheSize,
		CacheTTL:         cfg.CacheTTL.Duration,
		Logger:           logging.Wrap("parse-server", logger),
	})
	if err != nil {
		return err
	}

	if serveWatch {
		w, err := config.Watch(cmd.Context(), appConfig.Path(), 0,
			func(updated *config.Config) {
				srv.SetMaxInputLength(updated.Parser.MaxInputLength)
			},
			func(err error) {
				logger.WarnWithErr("Config reload failed", err)
			},
		)
		if err != nil {
			srv.Stop(context.Background())
			return err
		}
		defer w.Stop()
		logger.Info("Watching config", mdwlog.Fields{"path": w.Path()})
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	listener, err := srv.Listen()
	if err != nil {
		srv.Stop(context.Background())
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "parse service listening on %s\n", srv.Address())

	// Wait for signal or error
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", mdwlog.Fields{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	srv.Stop(ctx)
	return nil
}
