package ingest

import (
	"fmt"
	"log/slog"

	"github.com/covenscan/nft-indexer/internal/handler"
	"github.com/covenscan/nft-indexer/pkg/events"
	"github.com/covenscan/nft-indexer/pkg/infra"
)

// Consumer bridges the JetStream work queue to the transfer handler. The
// queue's MaxAckPending of 1 means decode+handle runs for exactly one event
// at a time, in delivery order.
type Consumer struct {
	queue   infra.MessageQueue
	handler *handler.Handler
	subject string
	log     *slog.Logger
}

func NewConsumer(queue infra.MessageQueue, h *handler.Handler, subject string, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{
		queue:   queue,
		handler: h,
		subject: subject,
		log:     log,
	}
}

func (c *Consumer) Start() error {
	return c.queue.Dequeue(c.subject, func(message []byte) error {
		var evt events.TransferEvent
		if err := evt.UnmarshalBinary(message); err != nil {
			// A payload that cannot decode will never decode; drop it.
			return fmt.Errorf("%w: decode transfer event: %s", infra.ErrPermanent, err)
		}

		if err := c.handler.Handle(evt); err != nil {
			c.log.Error("transfer handling failed",
				"tx_hash", evt.TxHash, "log_index", evt.LogIndex, "err", err)
			return err
		}

		c.log.Debug("transfer indexed",
			"tx_hash", evt.TxHash, "log_index", evt.LogIndex, "token_id", evt.TokenID)
		return nil
	})
}

func (c *Consumer) Stop() {
	c.queue.Close()
}
