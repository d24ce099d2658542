package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/specialistvlad/depscope/internal/closure"
	"github.com/specialistvlad/depscope/internal/ctxlog"
	"github.com/specialistvlad/depscope/internal/debugger"
	"github.com/specialistvlad/depscope/internal/entityref"
	"github.com/specialistvlad/depscope/internal/server"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)
	defer a.logger.Debug("App.Run method finished.")

	switch a.config.Command {
	case CommandInspect:
		return a.inspect(ctx)
	case CommandServe:
		return a.serve(ctx)
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
}

// inspect prints the dependencies of the configured target as indented JSON.
func (a *App) inspect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("target", a.config.Target, "raw", a.config.Raw)

	if a.model.Inverse.Len() == 0 {
		logger.Warn("No dependency entries loaded; the result will be empty.")
	}

	var out any
	if a.config.Raw {
		out = closure.Compute(a.model.Inverse, a.config.Target)
	} else {
		ref, err := entityref.Parse(a.config.Target)
		if err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}

		graph := debugger.EntityGraph(a.model.Inverse)
		if err := graph.DetectCycles(); err != nil {
			logger.Warn("Entity graph contains a cycle.", "error", err)
		}
		report := debugger.Inspect(graph, ref.Entity())
		logger.Debug("Entity inspected.", "direct", len(report.DirectDependencies), "inverse", len(report.InverseDependencies), "in_cycle", report.InCycle)
		out = report
	}

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// serve runs the dependency server until ctx is done.
func (a *App) serve(ctx context.Context) error {
	if a.config.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(ctx, a.model.Inverse, server.Config{
		Addr:      a.config.Addr,
		CacheSize: a.config.CacheSize,
	})
	if err != nil {
		return err
	}

	a.logger.Info("🚀 Serving dependency queries.", "addr", a.config.Addr, "keys", a.model.Inverse.Len())
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	a.logger.Info("🏁 Server stopped.")
	return nil
}
