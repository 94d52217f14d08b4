package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/suggestions/api"
	logpkg "github.com/runger/fitcue/internal/suggestions/log"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve suggestions over HTTP",
	GroupID: groupCore,
	Long: `Serve the suggestion engine and the exercise log over HTTP.

Routes:
  GET    /v1/suggestions?q=&at=&limit=
  GET    /v1/typical-duration?name=
  GET    /v1/entries?limit=
  POST   /v1/entries
  DELETE /v1/entries/{id}
  GET    /v1/catalog?q=
  GET    /healthz
  GET    /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.address)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(appOptions{logToStderr: true})
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Address
	if serveAddr != "" {
		addr = serveAddr
	}
	srvCfg := api.ServerConfig{
		Address:         addr,
		ReadTimeout:     time.Duration(a.cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout:    time.Duration(a.cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:     time.Duration(a.cfg.Server.IdleTimeoutMs) * time.Millisecond,
		ShutdownTimeout: time.Duration(a.cfg.Server.ShutdownTimeoutMs) * time.Millisecond,
	}

	handler := api.NewHandler(api.HandlerDependencies{
		Engine:  a.engine,
		Store:   a.store,
		Catalog: a.catalog,
		Logger:  a.logger,
		Now:     now,
	})
	srv := api.NewServer(srvCfg, api.NewMux(handler), a.logger)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schemaVersion, err := a.store.SchemaVersion(ctx)
	if err != nil {
		a.logger.Warn("failed to read schema version", "error", err)
	}
	logpkg.LogStartup(a.logger, logpkg.StartupInfo{
		Version:       Version,
		ConfigPath:    a.configFile(),
		DatabasePath:  a.cfg.DatabasePath(),
		SchemaVersion: schemaVersion,
		CatalogPath:   a.catalogPath,
		CatalogSize:   a.catalog.Len(),
		Address:       ln.Addr().String(),
		PID:           os.Getpid(),
	})

	err = api.Serve(ctx, srv, ln, srvCfg.ShutdownTimeout)
	reason := "signal"
	if err != nil {
		reason = err.Error()
	}
	logpkg.LogShutdown(a.logger, reason)
	return err
}
