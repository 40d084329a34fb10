package main

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/covenscan/nft-indexer/pkg/common/logger"
	"github.com/covenscan/nft-indexer/pkg/events"
	"github.com/covenscan/nft-indexer/pkg/infra"
)

func newPrinterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "printer",
		Short: "Subscribe to the transfer subject and print events",
		Run: func(cmd *cobra.Command, args []string) {
			runPrinter()
		},
	}
}

func runPrinter() {
	cfg := setup()

	nc, err := infra.GetNATSConnection(cfg.NATS.URL)
	if err != nil {
		logger.Fatal("NATS connect failed", "url", cfg.NATS.URL, "err", err)
	}
	defer nc.Close()

	logger.Info("Subscribed", "subject", cfg.NATS.Subject)

	_, err = nc.Subscribe(cfg.NATS.Subject, func(msg *nats.Msg) {
		var evt events.TransferEvent
		if err := evt.UnmarshalBinary(msg.Data); err != nil {
			logger.Error("Unmarshal error", "err", err)
			return
		}
		fmt.Printf("[%s] %s\n", msg.Subject, evt.String())
	})
	if err != nil {
		logger.Fatal("NATS subscribe failed", "err", err)
	}

	select {} // Block forever
}
