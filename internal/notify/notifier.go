// Package notify is the asynchronous boundary for material-update
// notifications. The services produce messages; a queue worker delivers
// them best-effort. Delivery failures are logged, never surfaced to the
// request that triggered them.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Message is one outbound course-update notification.
type Message struct {
	RecipientEmail string
	Title          string
}

// Sender delivers a single message. Implementations must be safe for use
// from the queue worker goroutine.
type Sender interface {
	Send(msg Message) error
}

// Notifier accepts messages for eventual delivery. Enqueue never blocks
// the caller.
type Notifier interface {
	Enqueue(msg Message)
}

// QueueNotifier hands messages to a single worker through a buffered
// channel. Delivery is at-least-once from the subscriber's point of view;
// a full queue drops the message with a log line rather than stalling the
// HTTP response.
type QueueNotifier struct {
	queue  chan Message
	sender Sender
	done   chan struct{}
}

func NewQueueNotifier(sender Sender, buffer int) *QueueNotifier {
	if buffer <= 0 {
		buffer = 256
	}
	return &QueueNotifier{
		queue:  make(chan Message, buffer),
		sender: sender,
		done:   make(chan struct{}),
	}
}

func (n *QueueNotifier) Enqueue(msg Message) {
	select {
	case n.queue <- msg:
	default:
		log.Warn().Str("recipient", msg.RecipientEmail).Msg("notification queue full, dropping message")
	}
}

// Start launches the worker. It runs until Stop is called.
func (n *QueueNotifier) Start() {
	go func() {
		defer close(n.done)
		for msg := range n.queue {
			if err := n.sender.Send(msg); err != nil {
				log.Error().Err(err).Str("recipient", msg.RecipientEmail).Msg("notification send failed")
				continue
			}
			log.Info().Str("recipient", msg.RecipientEmail).Str("title", msg.Title).Msg("notification sent")
		}
	}()
}

// Stop closes the queue and waits for the worker to drain it.
func (n *QueueNotifier) Stop(ctx context.Context) error {
	close(n.queue)
	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
