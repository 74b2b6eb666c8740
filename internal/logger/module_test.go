package logger

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/fx"
)

func TestModulePopulatesLogger(t *testing.T) {
	var logger *slog.Logger
	app := fx.New(Module, fx.Populate(&logger))
	if err := app.Err(); err != nil {
		t.Fatalf("building fx graph: %v", err)
	}
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	if logger == nil {
		t.Fatal("expected logger instance from the graph")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info logging to be enabled")
	}
}
