package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/user"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
)

type recordingSMSSender struct {
	mu    sync.Mutex
	sent  []string
	calls chan struct{}
}

func (s *recordingSMSSender) SendSMS(_ context.Context, toPhone, _ string) error {
	s.mu.Lock()
	s.sent = append(s.sent, toPhone)
	s.mu.Unlock()
	s.calls <- struct{}{}
	return nil
}

type recordingEmailSender struct {
	mu    sync.Mutex
	sent  []string
	calls chan struct{}
}

func (s *recordingEmailSender) SendEmail(_ context.Context, toEmail, _, _ string) error {
	s.mu.Lock()
	s.sent = append(s.sent, toEmail)
	s.mu.Unlock()
	s.calls <- struct{}{}
	return nil
}

func waitForCalls(t *testing.T, calls <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_RoutesByRecipientPreferences(t *testing.T) {
	sms := &recordingSMSSender{calls: make(chan struct{}, 4)}
	email := &recordingEmailSender{calls: make(chan struct{}, 4)}

	dispatcher, err := NewDispatcher(sms, email, 2, logging.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	both := user.User{ID: "u1", Email: "both@example.com", Phone: "+628111", NotifySMS: true, NotifyEmail: true}
	dispatcher.Notify(context.Background(), both, "Match score reported", "6-4, 6-3")

	waitForCalls(t, sms.calls, 1)
	waitForCalls(t, email.calls, 1)

	sms.mu.Lock()
	if len(sms.sent) != 1 || sms.sent[0] != "+628111" {
		t.Fatalf("unexpected sms deliveries: %v", sms.sent)
	}
	sms.mu.Unlock()

	email.mu.Lock()
	if len(email.sent) != 1 || email.sent[0] != "both@example.com" {
		t.Fatalf("unexpected email deliveries: %v", email.sent)
	}
	email.mu.Unlock()
}

func TestDispatcher_SkipsDisabledChannels(t *testing.T) {
	sms := &recordingSMSSender{calls: make(chan struct{}, 4)}
	email := &recordingEmailSender{calls: make(chan struct{}, 4)}

	dispatcher, err := NewDispatcher(sms, email, 2, logging.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	emailOnly := user.User{ID: "u2", Email: "mail@example.com", Phone: "+628222", NotifyEmail: true}
	dispatcher.Notify(context.Background(), emailOnly, "New match invite", "hello")

	waitForCalls(t, email.calls, 1)

	sms.mu.Lock()
	if len(sms.sent) != 0 {
		t.Fatalf("expected no sms deliveries, got %v", sms.sent)
	}
	sms.mu.Unlock()
}

func TestDispatcher_SkipsSMSWithoutPhone(t *testing.T) {
	sms := &recordingSMSSender{calls: make(chan struct{}, 4)}
	email := &recordingEmailSender{calls: make(chan struct{}, 4)}

	dispatcher, err := NewDispatcher(sms, email, 2, logging.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	noPhone := user.User{ID: "u3", Email: "np@example.com", NotifySMS: true, NotifyEmail: true}
	dispatcher.Notify(context.Background(), noPhone, "Post claimed", "hello")

	waitForCalls(t, email.calls, 1)

	sms.mu.Lock()
	if len(sms.sent) != 0 {
		t.Fatalf("expected no sms deliveries, got %v", sms.sent)
	}
	sms.mu.Unlock()
}
