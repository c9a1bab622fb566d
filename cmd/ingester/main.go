package main

import (
	"log/slog"
	"os"

	"github.com/specvital/reporter/internal/app/bootstrap"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := bootstrap.RunFromEnv("ingester"); err != nil {
		slog.Error("ingester failed", "error", err)
		os.Exit(1)
	}
}
