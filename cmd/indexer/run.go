package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/covenscan/nft-indexer/internal/api"
	"github.com/covenscan/nft-indexer/internal/handler"
	"github.com/covenscan/nft-indexer/internal/ingest"
	"github.com/covenscan/nft-indexer/pkg/common/logger"
	"github.com/covenscan/nft-indexer/pkg/infra"
	"github.com/covenscan/nft-indexer/pkg/kvstore"
	"github.com/covenscan/nft-indexer/pkg/retry"
	"github.com/covenscan/nft-indexer/pkg/store/accountstore"
	"github.com/covenscan/nft-indexer/pkg/store/interactionstore"
	"github.com/covenscan/nft-indexer/pkg/store/transferstore"
)

const version = "1.0.0"

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Consume transfer events and serve the query API",
		Run: func(cmd *cobra.Command, args []string) {
			runIndexer()
		},
	}
}

func runIndexer() {
	cfg := setup()

	store, err := kvstore.NewBadgerStore(cfg.Storage.Directory, cfg.Storage.Prefix, infra.JSON)
	if err != nil {
		logger.Fatal("Open badger store failed", "dir", cfg.Storage.Directory, "err", err)
	}
	defer store.Close()

	var nc *nats.Conn
	err = retry.Constant(func() error {
		var connErr error
		nc, connErr = infra.GetNATSConnection(cfg.NATS.URL)
		return connErr
	}, retry.DefaultInterval, retry.DefaultMaxAttempts)
	if err != nil {
		logger.Fatal("NATS connect failed", "url", cfg.NATS.URL, "err", err)
	}
	defer nc.Close()

	manager := infra.NewNATSMessageQueueManager(cfg.NATS.Stream, []string{cfg.NATS.Subject}, nc)
	queue := manager.NewMessageQueue(cfg.NATS.Consumer, cfg.NATS.Subject)

	accounts := accountstore.New(store)
	transfers := transferstore.New(store)
	interactions := interactionstore.New(store)

	h := handler.New(accounts, transfers, interactions, cfg.AddressBook(), logger.L())
	consumer := ingest.NewConsumer(queue, h, cfg.NATS.Subject, logger.L())
	if err := consumer.Start(); err != nil {
		logger.Fatal("Start consumer failed", "err", err)
	}

	apiHandler := api.NewHandler(version, accounts, transfers, interactions)
	server := api.NewServer(cfg.API.ListenAddr, apiHandler)
	go func() {
		logger.Info("Query API listening", "addr", cfg.API.ListenAddr)
		if err := server.Start(); err != nil {
			logger.Fatal("API server failed", "err", err)
		}
	}()

	logger.Info("Indexer is running... Press Ctrl+C to stop",
		"contract", cfg.Contract.Address, "subject", cfg.NATS.Subject)
	waitForShutdown()

	consumer.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("API shutdown failed", "err", err)
	}
	logger.Info("Indexer stopped")
}

func waitForShutdown() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
