package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/probekit/pingdump/pkg/datadir"
	"github.com/probekit/pingdump/pkg/export"
	"github.com/probekit/pingdump/pkg/index"
)

const (
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 60 * time.Second
	shutdownTimeout    = 10 * time.Second
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exports over HTTP",
	Long: `Serve exposes the same CSV/JSON export over HTTP at /v1/export,
re-reading the data file on every request. The address index is loaded
once at startup; restart the server after adding targets to stabping.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8321", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir, err := resolveDataDir()
	if err != nil {
		return err
	}
	addrs, err := index.Load(datadir.IndexPath(dir))
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	export.NewHandler(datadir.DataPath(dir), addrs).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         flagAddr,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("serving exports", "addr", flagAddr, "data_dir", dir, "targets", len(addrs))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
