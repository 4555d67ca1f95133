package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// QueueKey is the Redis list holding pending notification envelopes.
const QueueKey = "notifications:queue"

// RedisDispatcher implements domain.NotificationDispatcher by pushing the
// envelope onto a Redis list. The push is the durable "intent to notify";
// delivery happens in the worker, off the request path.
type RedisDispatcher struct {
	client *redis.Client
}

// NewRedisDispatcher creates a new notification dispatcher.
func NewRedisDispatcher(client *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{client: client}
}

// Enqueue implements domain.NotificationDispatcher
func (d *RedisDispatcher) Enqueue(ctx context.Context, n domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := d.client.LPush(ctx, QueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

// Worker drains the notification queue and delivers each envelope through
// the configured sender.
type Worker struct {
	client  *redis.Client
	sender  domain.NotificationSender
	baseURL string
}

// NewWorker creates a notification delivery worker. baseURL is the public
// address used to build activation and reset links.
func NewWorker(client *redis.Client, sender domain.NotificationSender, baseURL string) *Worker {
	return &Worker{client: client, sender: sender, baseURL: baseURL}
}

// Run blocks until ctx is cancelled, popping envelopes as they arrive. A
// failed delivery is logged and dropped; the queue is not a retry engine.
func (w *Worker) Run(ctx context.Context) {
	for {
		res, err := w.client.BRPop(ctx, 5*time.Second, QueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.Printf("notification worker: pop failed: %v", err)
			continue
		}

		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		var n domain.Notification
		if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
			log.Printf("notification worker: bad envelope: %v", err)
			continue
		}
		if err := w.Deliver(&n); err != nil {
			log.Printf("notification worker: delivery failed: id=%s template=%s error=%v", n.ID, n.Template, err)
		}
	}
}

// Deliver sends one envelope over the channel its template implies.
func (w *Worker) Deliver(n *domain.Notification) error {
	switch n.Template {
	case domain.TemplateActivateOTP:
		return w.sender.SendSMS(n.Recipient,
			fmt.Sprintf("Your Med-O-Sys verification code is %s", n.Payload))
	case domain.TemplateResetOTP:
		return w.sender.SendSMS(n.Recipient,
			fmt.Sprintf("Your Med-O-Sys password reset code is %s", n.Payload))
	case domain.TemplateActivationLink:
		return w.sender.SendEmail(n.Recipient, "Activate your account",
			fmt.Sprintf("Visit %s/email/verify?token=%s to activate your account", w.baseURL, n.Payload))
	case domain.TemplateResetLink:
		return w.sender.SendEmail(n.Recipient, "Reset your password",
			fmt.Sprintf("Visit %s/password/reset?token=%s to reset your password", w.baseURL, n.Payload))
	default:
		return fmt.Errorf("unknown notification template %q", n.Template)
	}
}
