package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/covenscan/nft-indexer/internal/config"
	"github.com/covenscan/nft-indexer/pkg/common/logger"
)

var (
	configPath string
	debug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "indexer",
		Short: "NFT transfer indexer with marketplace classification",
	}

	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")

	root.AddCommand(newRunCmd())
	root.AddCommand(newEmitCmd())
	root.AddCommand(newPrinterCmd())
	root.AddCommand(newDumpCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() *config.Config {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger.Init(&logger.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Load config failed", "path", configPath, "err", err)
	}
	logger.Info("Config loaded", "path", configPath)
	return cfg
}
