// Command zonegated runs the zonegate remote-connection gateway: it loads
// the zone topology from configuration, builds the remote zone connection
// directory, and serves health and metrics endpoints.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zonegate-io/zonegate/internal/config"
	"github.com/zonegate-io/zonegate/internal/logging"
	"github.com/zonegate-io/zonegate/internal/metrics"
	"github.com/zonegate-io/zonegate/internal/remote"
	"github.com/zonegate-io/zonegate/internal/restconn"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	fs := flag.NewFlagSet("zonegated", flag.ExitOnError)
	configPath := fs.String("config", "zonegate.yaml", "Path to configuration file")
	metricsAddr := fs.String("metrics-addr", "", "Override metrics/health listen address")
	logLevel := fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "Print version information and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("zonegated version %s (built %s)\n", version, buildTime)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Observability.MetricsAddr = *metricsAddr
	}
	if *logLevel != "" {
		cfg.Observability.LogLevel = *logLevel
	}

	logger := logging.Configure(cfg.Observability.LogLevel, cfg.Observability.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Errorf("zonegated failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	users, err := buildUserStore(cfg)
	if err != nil {
		return err
	}

	topo, err := buildTopology(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	remoteMetrics := metrics.NewRemoteMetricsWithRegistry(reg)

	dir := remote.NewDirectory(remote.DirectoryConfig{
		Topology: topo,
		Users:    users,
		NewConn:  restconn.Factory,
		Logger:   logger,
		Metrics:  remoteMetrics,
	})
	dir.Init()
	defer func() {
		if err := dir.Close(); err != nil {
			logger.Warnf("error releasing connections", map[string]any{"error": err.Error()})
		}
	}()

	logStartup(cfg, logger, dir)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	srv := &http.Server{Addr: cfg.Observability.MetricsAddr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case sig := <-sigCh:
		logger.Infof("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func logStartup(cfg *config.Config, logger *logging.Logger, dir *remote.Directory) {
	connected := 0
	for _, z := range cfg.ZoneGroup.Zones {
		if _, ok := dir.ConnsByID(z.ID); ok {
			connected++
		}
	}
	for _, z := range cfg.ZoneGroup.ForeignZones {
		if _, ok := dir.ConnsByID(z.ID); ok {
			connected++
		}
	}

	fields := map[string]any{
		"zoneId":         cfg.Gateway.ZoneID,
		"zonegroup":      cfg.ZoneGroup.ID,
		"zonesConnected": connected,
	}
	if endpoint, ok := dir.RedirectEndpoint(); ok {
		fields["redirectEndpoint"] = endpoint
	}
	logger.Infof("zonegated started", fields)
}
