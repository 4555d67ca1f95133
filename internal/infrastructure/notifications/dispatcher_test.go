package notifications

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/mocks"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisDispatcher_Enqueue(t *testing.T) {
	mr, client := newTestRedis(t)
	dispatcher := NewRedisDispatcher(client)

	err := dispatcher.Enqueue(context.Background(), domain.Notification{
		UserID:    7,
		Template:  domain.TemplateActivateOTP,
		Recipient: "9841000000",
		Payload:   "123456",
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	raw, err := mr.Lpop(QueueKey)
	if err != nil {
		t.Fatalf("expected one queued envelope: %v", err)
	}
	var n domain.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if n.ID == "" {
		t.Error("expected an assigned envelope id")
	}
	if n.UserID != 7 || n.Template != domain.TemplateActivateOTP || n.Payload != "123456" {
		t.Errorf("unexpected envelope %+v", n)
	}
}

func TestWorker_Deliver(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		recipient string
		payload   string
		wantSMS   string
		wantEmail string
	}{
		{
			name:      "activation OTP goes over sms",
			template:  domain.TemplateActivateOTP,
			recipient: "9841000000",
			payload:   "654321",
			wantSMS:   "654321",
		},
		{
			name:      "reset OTP goes over sms",
			template:  domain.TemplateResetOTP,
			recipient: "9841000000",
			payload:   "112233",
			wantSMS:   "112233",
		},
		{
			name:      "activation link goes over email",
			template:  domain.TemplateActivationLink,
			recipient: "ram@example.com",
			payload:   "tokenvalue",
			wantEmail: "Activate your account",
		},
		{
			name:      "reset link goes over email",
			template:  domain.TemplateResetLink,
			recipient: "ram@example.com",
			payload:   "tokenvalue",
			wantEmail: "Reset your password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := mocks.NewMockNotificationSender()
			worker := NewWorker(nil, sender, "https://auth.example.com")

			err := worker.Deliver(&domain.Notification{
				ID:        "x",
				Template:  tt.template,
				Recipient: tt.recipient,
				Payload:   tt.payload,
			})
			if err != nil {
				t.Fatalf("Deliver: %v", err)
			}

			if tt.wantSMS != "" {
				if len(sender.SMS) != 1 || !strings.Contains(sender.SMS[0], tt.wantSMS) {
					t.Errorf("expected an SMS carrying %q, got %v", tt.wantSMS, sender.SMS)
				}
			}
			if tt.wantEmail != "" {
				if len(sender.Emails) != 1 || !strings.Contains(sender.Emails[0], tt.wantEmail) {
					t.Errorf("expected an email carrying %q, got %v", tt.wantEmail, sender.Emails)
				}
			}
		})
	}

	t.Run("unknown template is an error", func(t *testing.T) {
		worker := NewWorker(nil, mocks.NewMockNotificationSender(), "")
		if err := worker.Deliver(&domain.Notification{Template: "bogus"}); err == nil {
			t.Fatal("expected error for an unknown template")
		}
	})
}

func TestWorker_RunDrainsQueue(t *testing.T) {
	_, client := newTestRedis(t)
	dispatcher := NewRedisDispatcher(client)
	sender := mocks.NewMockNotificationSender()
	delivered := make(chan string, 1)
	sender.SendSMSFunc = func(to, message string) error {
		delivered <- to
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := NewWorker(client, sender, "")
	go worker.Run(ctx)

	err := dispatcher.Enqueue(ctx, domain.Notification{
		Template:  domain.TemplateActivateOTP,
		Recipient: "9841000000",
		Payload:   "123456",
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	select {
	case to := <-delivered:
		if to != "9841000000" {
			t.Errorf("delivered to %q", to)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}
