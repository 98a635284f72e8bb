package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/powercastio/powercast/internal/config"
	"github.com/powercastio/powercast/internal/logging"
	"github.com/powercastio/powercast/internal/pipeline"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (default: params.yaml in the working directory)")
	modelName := flag.String("model-name", "", "Name of the configured model to train (required)")
	flag.Parse()

	if *modelName == "" {
		fmt.Fprintln(os.Stderr, "--model-name is required")
		flag.Usage()
		os.Exit(1)
	}

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Train stage starting...",
		"model", *modelName,
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// 3. Make sure the artifact directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("Failed to create output directories", "error", err)
	}

	// 4. Run the stage under a fresh run ID
	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	if err := pipeline.New(cfg, logger).Train(ctx, *modelName); err != nil {
		logger.Fatal("Training failed", "model", *modelName, "error", err)
	}

	logger.Info("Train stage finished", "model", *modelName)
}
