package notify

import (
	"context"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
)

// SMSSender delivers a short text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, toPhone, message string) error
}

// EmailSender delivers a subject and body to an email address.
type EmailSender interface {
	SendEmail(ctx context.Context, toEmail, subject, message string) error
}

const defaultSendTimeout = 10 * time.Second

// Dispatcher fans notification deliveries out to a worker pool so the
// request path never waits on a provider. Channel choice follows the
// recipient's notify_sms and notify_email preferences; a recipient with
// neither enabled only gets the in-app record written by the caller.
type Dispatcher struct {
	sms         SMSSender
	email       EmailSender
	pool        *ants.Pool
	sendTimeout time.Duration
	logger      *logging.Logger
}

func NewDispatcher(sms SMSSender, email EmailSender, workers int, logger *logging.Logger) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		sms:         sms,
		email:       email,
		pool:        pool,
		sendTimeout: defaultSendTimeout,
		logger:      logger,
	}, nil
}

// Notify enqueues delivery and returns immediately. Failures are logged
// and dropped; notification delivery must never fail the request that
// triggered it.
func (d *Dispatcher) Notify(ctx context.Context, recipient user.User, subject, message string) {
	// The request context ends when the response is written, so deliveries
	// run on a detached context carrying the original trace values.
	base := context.WithoutCancel(ctx)

	if d.sms != nil && recipient.NotifySMS && strings.TrimSpace(recipient.Phone) != "" {
		d.submit(base, recipient.ID, "sms", func(sendCtx context.Context) error {
			return d.sms.SendSMS(sendCtx, recipient.Phone, message)
		})
	}

	if d.email != nil && recipient.NotifyEmail && strings.TrimSpace(recipient.Email) != "" {
		d.submit(base, recipient.ID, "email", func(sendCtx context.Context) error {
			return d.email.SendEmail(sendCtx, recipient.Email, subject, message)
		})
	}
}

func (d *Dispatcher) submit(base context.Context, recipientID, channel string, send func(context.Context) error) {
	err := d.pool.Submit(func() {
		sendCtx, cancel := context.WithTimeout(base, d.sendTimeout)
		defer cancel()

		if err := send(sendCtx); err != nil {
			d.logger.WarnContext(sendCtx, "notification delivery failed",
				"recipient_id", recipientID,
				"channel", channel,
				"error", err,
			)
		}
	})
	if err != nil {
		d.logger.WarnContext(base, "notification delivery rejected by worker pool",
			"recipient_id", recipientID,
			"channel", channel,
			"error", err,
		)
	}
}

// Close drains the worker pool. Call during shutdown.
func (d *Dispatcher) Close() {
	d.pool.Release()
}
