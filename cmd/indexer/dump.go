package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covenscan/nft-indexer/pkg/common/logger"
	"github.com/covenscan/nft-indexer/pkg/infra"
	"github.com/covenscan/nft-indexer/pkg/kvstore"
)

func newDumpCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump indexed entities from the badger store",
		Run: func(cmd *cobra.Command, args []string) {
			runDump(prefix)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix to dump (accounts, transfers, interactions); empty dumps all")
	return cmd
}

func runDump(prefix string) {
	cfg := setup()

	store, err := kvstore.NewBadgerStore(cfg.Storage.Directory, cfg.Storage.Prefix, infra.JSON)
	if err != nil {
		logger.Fatal("Open badger store failed", "dir", cfg.Storage.Directory, "err", err)
	}
	defer store.Close()

	prefixes := []string{"accounts/", "transfers/", "interactions/"}
	if prefix != "" {
		prefixes = []string{prefix + "/"}
	}

	total := 0
	for _, p := range prefixes {
		kvs, err := store.List(p)
		if err != nil {
			logger.Fatal("List failed", "prefix", p, "err", err)
		}
		for _, kv := range kvs {
			fmt.Printf("%s\t%s\n", kv.Key, string(kv.Value))
		}
		total += len(kvs)
	}
	logger.Info("Dump complete", "entries", total)
}
