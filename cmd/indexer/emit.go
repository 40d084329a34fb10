package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/covenscan/nft-indexer/pkg/common/logger"
	"github.com/covenscan/nft-indexer/pkg/events"
	"github.com/covenscan/nft-indexer/pkg/infra"
)

func newEmitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Publish transfer events from a JSON fixture file",
		Run: func(cmd *cobra.Command, args []string) {
			runEmit(file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON array of transfer events")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runEmit(file string) {
	cfg := setup()

	data, err := os.ReadFile(file)
	if err != nil {
		logger.Fatal("Read fixture file failed", "file", file, "err", err)
	}

	var evts []events.TransferEvent
	if err := json.Unmarshal(data, &evts); err != nil {
		logger.Fatal("Parse fixture file failed", "file", file, "err", err)
	}

	nc, err := infra.GetNATSConnection(cfg.NATS.URL)
	if err != nil {
		logger.Fatal("NATS connect failed", "url", cfg.NATS.URL, "err", err)
	}
	defer nc.Close()

	manager := infra.NewNATSMessageQueueManager(cfg.NATS.Stream, []string{cfg.NATS.Subject}, nc)
	emitter := events.NewEmitter(manager.NewPublisher(), cfg.NATS.Subject)

	for _, evt := range evts {
		if err := emitter.EmitTransfer(evt); err != nil {
			logger.Fatal("Emit transfer failed", "tx_hash", evt.TxHash, "err", err)
		}
		logger.Info("Emitted transfer", "tx_hash", evt.TxHash, "log_index", evt.LogIndex)
	}
	logger.Info("Done", "count", len(evts))
}
