package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"chatlist/internal/config"
	"chatlist/internal/diag"
	"chatlist/internal/gateway"
	"chatlist/internal/logging"
	"chatlist/internal/roster"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app bundles everything a command needs to talk to the collection.
type app struct {
	cfg     *config.Config
	cfgDir  string
	client  *gateway.Client
	roster  *roster.Controller
	journal *diag.Store
	metrics *http.Server
}

// resolveConfig loads the config file and applies command-line overrides.
func resolveConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	if baseURL != "" {
		cfg.Gateway.BaseURL = baseURL
	}
	if metricsAddr != "" {
		cfg.Metrics.ListenAddr = metricsAddr
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, filepath.Dir(path), nil
}

// newApp wires config, logging, the failure journal, metrics and the gateway.
// Interactive sessions log to files; one-shot commands log through the zap logger.
func newApp(interactive bool) (*app, error) {
	cfg, dir, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	if interactive {
		logsDir := cfg.Logging.Dir
		if logsDir == "" {
			logsDir = filepath.Join(dir, "logs")
		}
		if err := logging.Initialize(logsDir, cfg.Logging); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	} else {
		lvl, err := zapcore.ParseLevel(cfg.Logging.EffectiveLevel())
		if err != nil {
			return nil, fmt.Errorf("invalid logging level: %w", err)
		}
		logLevel.SetLevel(lvl)

		l := logger
		if l == nil {
			l = zap.NewNop()
		}
		logging.InitializeWithCore(l.Core(), cfg.Logging)
	}

	a := &app{cfg: cfg, cfgDir: dir}

	opts := []gateway.Option{
		gateway.WithTimeout(cfg.GetGatewayTimeout()),
		gateway.WithRateLimit(cfg.Gateway.RateLimit, cfg.Gateway.RateBurst),
	}

	if path := cfg.DiagnosticsPath(dir); path != "" {
		journal, err := diag.NewStore(path)
		if err != nil {
			// The journal is an aid, not a requirement.
			logging.BootError("diagnostics journal unavailable at %s: %v", path, err)
		} else {
			a.journal = journal
			opts = append(opts, gateway.WithRecorder(journal))
		}
	}

	reg := prometheus.NewRegistry()
	opts = append(opts, gateway.WithMetrics(gateway.NewMetrics(reg)))
	if cfg.Metrics.ListenAddr != "" {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = serveMetrics(cfg.Metrics.ListenAddr, reg)
	}

	a.client = gateway.NewClient(cfg.Gateway.BaseURL, opts...)
	a.roster = roster.NewController(a.client)

	logging.Boot("chatlist ready base_url=%s journal=%t metrics=%q",
		a.client.BaseURL(), a.journal != nil, cfg.Metrics.ListenAddr)
	return a, nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.BootError("metrics listener on %s stopped: %v", addr, err)
		}
	}()
	logging.Boot("serving metrics on %s/metrics", addr)
	return srv
}

// Close releases the journal and metrics listener and flushes logs.
func (a *app) Close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metrics.Shutdown(ctx)
		cancel()
	}
	if a.journal != nil {
		_ = a.journal.Close()
	}
	logging.CloseAll()
}
