package events

import (
	"github.com/covenscan/nft-indexer/pkg/infra"
)

// Emitter publishes transfer events onto the work queue. Production feeds the
// queue from a chain watcher; the CLI emit command uses this for fixtures.
type Emitter interface {
	EmitTransfer(evt TransferEvent) error
	Close()
}

type emitter struct {
	queue   infra.MessageQueue
	subject string
}

func NewEmitter(queue infra.MessageQueue, subject string) Emitter {
	return &emitter{
		queue:   queue,
		subject: subject,
	}
}

func (e *emitter) EmitTransfer(evt TransferEvent) error {
	data, err := evt.MarshalBinary()
	if err != nil {
		return err
	}
	return e.queue.Enqueue(e.subject, data, &infra.EnqueueOptions{
		IdempotentKey: evt.IdempotentKey(),
	})
}

func (e *emitter) Close() {
	if e.queue != nil {
		e.queue.Close()
	}
}
