package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tweetsense/internal/classifier"
	"tweetsense/internal/config"
	"tweetsense/internal/logger"
)

var configPath string

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tweetsense",
		Short:         "Tweet sentiment analysis backed by a pre-trained model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")

	root.AddCommand(newServeCmd(), newAnalyzeCmd())

	return root
}

// bootstrap loads config, builds the logger and brings the model up. A model
// that cannot be loaded is fatal for every command.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, classifier.Model, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	model, err := classifier.New(ctx, cfg.Classifier, log)
	if err != nil {
		log.Error("Failed to create classifier", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	log.Info("Loading model",
		zap.String("backend", model.Backend()),
		zap.String("model", model.Name()),
	)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Classifier.LoadTimeout)
	defer cancel()

	if err := model.Load(loadCtx); err != nil {
		log.Error("Failed to load model", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("failed to load model: %w", err)
	}
	log.Info("Model loaded")

	return cfg, log, model, nil
}
