package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/covenscan/nft-indexer/pkg/common/logger"
)

// ErrPermanent marks a message that must not be redelivered (e.g. a payload
// that can never decode). The consumer terminates it instead of nacking.
var ErrPermanent = errors.New("permanent messaging error")

type MessageQueue interface {
	Enqueue(topic string, message []byte, options *EnqueueOptions) error
	// handler shouldn't be a blocking call as it would trigger redelivery of
	// the message if certain period of time has passed without ack.
	Dequeue(topic string, handler func(message []byte) error) error
	Close()
}

type EnqueueOptions struct {
	IdempotentKey string
}

type msgQueue struct {
	consumerName    string
	js              jetstream.JetStream
	consumer        jetstream.Consumer
	consumerContext jetstream.ConsumeContext
}

type NATSMessageQueueManager struct {
	streamName string
	js         jetstream.JetStream
}

func NewNATSMessageQueueManager(streamName string, subjects []string, nc *nats.Conn) *NATSMessageQueueManager {
	js, err := jetstream.New(nc)
	if err != nil {
		logger.Fatal("Error creating JetStream context", "err", err)
	}

	ctx := context.Background()
	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		logger.Warn("Stream not found, creating new stream", "stream", streamName)
	}
	if stream != nil {
		info, _ := stream.Info(ctx)
		logger.Info("Stream found", "name", info.Config.Name, "subjects", info.Config.Subjects, "state", info.State.Msgs)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Stream for " + streamName,
		Subjects:    subjects,
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.WorkQueuePolicy,
		Duplicates:  10 * time.Minute, // dedupe window for Nats-Msg-Id
		MaxAge:      2 * 24 * time.Hour,
	})
	if err != nil {
		logger.Fatal("Error creating JetStream stream", "err", err)
	}

	return &NATSMessageQueueManager{
		streamName: streamName,
		js:         js,
	}
}

// NewMessageQueue creates a durable consumer. MaxAckPending is pinned to 1:
// the handler mutates shared aggregates and must see events strictly in
// delivery order, one at a time.
func (m *NATSMessageQueueManager) NewMessageQueue(consumerName string, filterSubject string) MessageQueue {
	mq := &msgQueue{
		consumerName: consumerName,
		js:           m.js,
	}
	cfg := jetstream.ConsumerConfig{
		Name:          consumerName,
		Durable:       consumerName,
		MaxAckPending: 1,
		FilterSubjects: []string{
			filterSubject,
		},
		AckPolicy: jetstream.AckExplicitPolicy,
	}
	logger.Info("Creating consumer for subject", "name", cfg.Name, "durable", cfg.Durable, "filterSubjects", cfg.FilterSubjects)
	consumer, err := m.js.CreateOrUpdateConsumer(context.Background(), m.streamName, cfg)
	if err != nil {
		logger.Fatal("Error creating JetStream consumer", "err", err)
	}

	mq.consumer = consumer
	return mq
}

// NewPublisher returns a publish-only queue bound to the stream. Dequeue is
// not supported on it.
func (m *NATSMessageQueueManager) NewPublisher() MessageQueue {
	return &msgQueue{js: m.js}
}

func (mq *msgQueue) Enqueue(topic string, message []byte, options *EnqueueOptions) error {
	header := nats.Header{}
	if options != nil && options.IdempotentKey != "" {
		header.Add("Nats-Msg-Id", options.IdempotentKey)
	}

	_, err := mq.js.PublishMsg(context.Background(), &nats.Msg{
		Subject: topic,
		Data:    message,
		Header:  header,
	})

	if err != nil {
		return fmt.Errorf("error enqueueing message: %w", err)
	}
	return nil
}

func (mq *msgQueue) Dequeue(topic string, handler func(message []byte) error) error {
	logger.Info("Dequeuing messages", "topic", topic)
	c, err := mq.consumer.Consume(func(msg jetstream.Msg) {
		err := handler(msg.Data())
		if err != nil {
			if errors.Is(err, ErrPermanent) {
				meta, _ := msg.Metadata()
				logger.Error("Permanent error on message, terminating", "meta", meta, "err", err)
				msg.Term()
				return
			}

			logger.Error("Error handling message, requesting redelivery", "err", err)
			msg.Nak()
			return
		}

		if err := msg.Ack(); err != nil {
			logger.Error("Error acknowledging message", "err", err)
		}
	})
	mq.consumerContext = c
	return err
}

func (mq *msgQueue) Close() {
	if mq.consumerContext != nil {
		mq.consumerContext.Stop()
	}
}
