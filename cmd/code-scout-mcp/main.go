package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DeusData/code-scout-mcp/internal/config"
	"github.com/DeusData/code-scout-mcp/internal/githost"
	"github.com/DeusData/code-scout-mcp/internal/repocache"
	"github.com/DeusData/code-scout-mcp/internal/tools"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("code-scout-mcp", version)
		os.Exit(0)
	}

	// stdout carries the MCP transport; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("main.getwd", "error", err)
		os.Exit(1)
	}
	cfg := config.Load(cwd)

	cache := repocache.New(
		cfg.EffectiveCacheDir(),
		cfg.EffectiveMaxAge(),
		cfg.EffectiveMaxSizeMiB(),
		cfg.EffectiveCloneTimeout(),
		githost.Clone,
	)

	srv := tools.NewServer(cache, cfg, version)

	slog.Info("server.start", "version", version, "cache_dir", cfg.EffectiveCacheDir())
	if err := srv.Run(context.Background()); err != nil {
		slog.Error("server.stopped", "error", err)
		os.Exit(1)
	}
}
