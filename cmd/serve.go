package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/logging"
	"github.com/papapumpkin/starfield/internal/server"
	"github.com/papapumpkin/starfield/internal/session"
	"github.com/papapumpkin/starfield/internal/sqlstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the galaxy database over the starfield HTTP API",
	Long: `Serve every user's galaxy from the local SQLite database. Requests are
authenticated with bearer tokens signed by server.secret; issue one with
"starfield user add". Prometheus metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}

	verifier, err := session.NewVerifier(cfg.Server.Secret)
	if err != nil {
		return fmt.Errorf("server.secret is required (STARFIELD_SERVER_SECRET): %w", err)
	}

	log, err := logging.Console(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := server.New(db, verifier, server.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
		Logger:      log.Named("api"),
	})
	log.Info("serving galaxy database", zap.String("db", cfg.DBPath))
	return srv.ListenAndServe(ctx, addr)
}
