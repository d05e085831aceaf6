package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reporting API",
	Long: `Start the HTTP API for reporting front ends.

Endpoints:
  GET  /health
  GET  /api/v1/trades
  GET  /api/v1/trades/:id
  GET  /api/v1/stats?initial_capital=&from=&to=
  POST /api/v1/calc/pips
  POST /api/v1/calc/pnl`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	addr := ev.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(ev.cfg, ev.store, ev.sessions, ev.log.Named("api")).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		ev.log.Info("http server starting", zap.String("addr", addr), zap.String("user_id", ev.user))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	ev.log.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
