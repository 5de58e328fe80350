package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vayudoot-cloud/vayudoot-netclient/internal/cache"
	"github.com/vayudoot-cloud/vayudoot-netclient/internal/config"
	"github.com/vayudoot-cloud/vayudoot-netclient/internal/logger"
	"github.com/vayudoot-cloud/vayudoot-netclient/pkg/audit"
	"github.com/vayudoot-cloud/vayudoot-netclient/pkg/netclient"
	"github.com/vayudoot-cloud/vayudoot-netclient/pkg/tracing"
)

// netcheck performs one authenticated round trip against the configured
// control plane and reports the classified outcome. All knobs come from the
// environment; there are no flags.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "netcheck failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("netcheck starting", "endpoint", cfg.EndpointURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, closeFn, err := buildClient(ctx, cfg)
	if err != nil {
		logger.ErrorObj("failed to initialize client", "error", err)
		return err
	}
	defer closeFn()

	resp, text, err := client.DoRequest(ctx, "/v2.0/networks", http.MethodGet, netclient.RequestOptions{})
	if err != nil {
		switch {
		case netclient.IsUnauthorized(err):
			logger.ErrorObj("control plane rejected credentials", "error", err.Error())
		case netclient.IsConnectionFailed(err):
			logger.ErrorObj("control plane unreachable", "error", err.Error())
		}
		return fmt.Errorf("netcheck call: %w", err)
	}

	logger.InfoObj("netcheck finished", "result", map[string]any{
		"status":     resp.StatusCode(),
		"body_bytes": len(text),
	})
	return nil
}

// buildClient wires cache, audit sinks and tracing into an HTTPClient per the
// loaded config. The returned func releases the cache handle.
func buildClient(ctx context.Context, cfg *config.Config) (*netclient.HTTPClient, func(), error) {
	client := netclient.New(netclient.Config{
		Token:           cfg.AuthToken,
		EndpointURL:     cfg.EndpointURL,
		GlobalRequestID: cfg.GlobalRequestID,
		Timeout:         cfg.RequestTimeout,
	})
	client.SetLogger(logger.Std{})

	if cfg.TraceEnabled {
		client.SetTraceProvider(tracing.NewW3CProvider(cfg.TraceState))
	}

	store, err := cache.NewCache(cfg.CacheType, cfg.CachePath, cache.Options{
		EntryTTL:        cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init cache: %w", err)
	}
	client.SetCache(store)

	if cfg.AuditFile != "" {
		reg, err := audit.LoadRegistry(cfg.AuditFile)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("load audit sinks: %w", err)
		}
		sinks, err := audit.BuildAll(ctx, audit.DefaultRegistry(), reg.Enabled(), logger.Std{})
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("build audit sinks: %w", err)
		}
		client.SetRecorder(audit.NewFanout(sinks, logger.Std{}))
	}

	return client, func() { store.Close() }, nil
}
