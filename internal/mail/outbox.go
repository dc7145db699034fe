package mail

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	outboxKey   = "mail:outbox"
	maxAttempts = 3
	sendTimeout = 30 * time.Second
	popTimeout  = 5 * time.Second
)

// Enqueuer is the narrow surface workflows use to trigger notifications.
// Delivery is best effort: a failure is logged, never surfaced to the request
// that triggered it.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message)
}

// Outbox queues notification email on a Redis list and drains it in the
// background. When Redis is unreachable it degrades to direct asynchronous
// delivery.
type Outbox struct {
	client *redis.Client
	mailer Mailer
}

// NewOutbox creates an outbox. A nil client disables queueing entirely.
func NewOutbox(client *redis.Client, mailer Mailer) *Outbox {
	return &Outbox{client: client, mailer: mailer}
}

// Enqueue queues msg for delivery.
func (o *Outbox) Enqueue(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("outbox: marshal message for %s: %v", msg.To, err)
		return
	}
	if o.client != nil {
		if err := o.client.LPush(ctx, outboxKey, payload).Err(); err == nil {
			return
		} else {
			log.Printf("outbox: queue unavailable, sending directly: %v", err)
		}
	}
	go o.deliver(msg)
}

func (o *Outbox) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := o.mailer.Send(ctx, msg); err != nil {
		log.Printf("outbox: send to %s failed: %v", msg.To, err)
	}
}

// Run drains the outbox until ctx is canceled. A failed send is requeued with
// an incremented attempt counter and dropped after maxAttempts.
func (o *Outbox) Run(ctx context.Context) {
	if o.client == nil {
		<-ctx.Done()
		return
	}
	for {
		res, err := o.client.BRPop(ctx, popTimeout, outboxKey).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Printf("outbox: pop: %v", err)
			time.Sleep(time.Second)
			continue
		}

		var msg Message
		if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
			log.Printf("outbox: dropping malformed message: %v", err)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err = o.mailer.Send(sendCtx, msg)
		cancel()
		if err == nil {
			continue
		}

		msg.Attempts++
		if msg.Attempts >= maxAttempts {
			log.Printf("outbox: dropping mail to %s after %d attempts: %v", msg.To, msg.Attempts, err)
			continue
		}
		log.Printf("outbox: send to %s failed (attempt %d), requeueing: %v", msg.To, msg.Attempts, err)
		if payload, merr := json.Marshal(msg); merr == nil {
			_ = o.client.LPush(ctx, outboxKey, payload).Err()
		}
	}
}
