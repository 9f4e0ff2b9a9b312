// Command browserbridge serves the bridge's five MCP tools over
// line-delimited JSON-RPC on stdio (spec §1, §6).
//
// Structure follows the teacher's cmd/purify/main.go: load config, init
// logging, construct the long-lived components, serve, handle shutdown
// signals. The teacher's version shuts down an HTTP listener; this one
// has no listener to drain (stdio closes when the client disconnects)
// but still tears down the browser session and logs the signal, same
// as the teacher logs and waits on srv.Shutdown.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-rod/rod"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/browserbridge/authcache"
	"github.com/use-agent/browserbridge/browser"
	"github.com/use-agent/browserbridge/config"
	"github.com/use-agent/browserbridge/orchestrator"
	"github.com/use-agent/browserbridge/pagepool"
	"github.com/use-agent/browserbridge/toolrouter"
)

const serverVersion = "0.1.0"

func main() {
	cfg := config.Load()
	initLogger(cfg.Log)

	slog.Info("browserbridge starting",
		"chromeHost", cfg.Chrome.Host,
		"chromePort", cfg.Chrome.Port,
		"edgeHost", cfg.Edge.Host,
		"edgePort", cfg.Edge.Port,
		"defaultFetchURL", cfg.Tool.DefaultFetchURL,
	)

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	pool := pagepool.New()
	cache := authcache.New()

	session := browser.NewSession(
		func(b *rod.Browser) {
			if err := pool.Reconstruct(b); err != nil {
				slog.Warn("pool reconstruction after attach failed", "error", err)
			}
		},
		func() {
			slog.Warn("browser transport lost, clearing page pool")
			pool.Clear()
		},
		cfg.Chrome, cfg.Edge,
	)
	defer session.Close()

	orch := orchestrator.New(session, pool, cache)

	s := server.NewMCPServer(
		"browserbridge",
		serverVersion,
		server.WithToolCapabilities(false),
	)
	toolrouter.Register(s, orch, pool, cfg)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ServeStdio(s)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			slog.Error("transport closed with error", "error", err)
			return 1
		}
		slog.Info("transport closed")
		return 0
	case received := <-sig:
		slog.Info("shutdown signal received", "signal", received.String())
		return 0
	}
}

// initLogger configures slog based on the LogConfig. Unlike the
// teacher, which logs to stdout alongside its HTTP server, this
// process must log to stderr exclusively: stdout carries the MCP
// JSON-RPC stream and any stray log line on it would corrupt the
// transport.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
