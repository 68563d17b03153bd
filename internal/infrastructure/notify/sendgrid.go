package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
	"github.com/riskibarqy/tennispal/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

var errSendGridTransient = crerr.New("sendgrid transient failure")

type SendGridConfig struct {
	BaseURL        string
	APIKey         string
	FromEmail      string
	FromName       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// SendGridClient sends transactional email through the SendGrid v3 API.
type SendGridClient struct {
	client         *fasthttp.Client
	sendURL        string
	apiKey         string
	fromEmail      string
	fromName       string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewSendGridClient(cfg SendGridConfig, logger *logging.Logger) *SendGridClient {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &SendGridClient{
		client:         &fasthttp.Client{},
		sendURL:        baseURL + "/v3/mail/send",
		apiKey:         strings.TrimSpace(cfg.APIKey),
		fromEmail:      strings.TrimSpace(cfg.FromEmail),
		fromName:       strings.TrimSpace(cfg.FromName),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridMailRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

func (c *SendGridClient) SendEmail(ctx context.Context, toEmail, subject, message string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return crerr.New("recipient email is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sendgrid circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("sendgrid is temporarily unavailable: %w", err)
		}
	}

	payload := sendGridMailRequest{
		Personalizations: []sendGridPersonalization{{To: []sendGridAddress{{Email: toEmail}}}},
		From:             sendGridAddress{Email: c.fromEmail, Name: c.fromName},
		Subject:          subject,
		Content:          []sendGridContent{{Type: "text/plain", Value: message}},
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal sendgrid payload")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.sendURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		callErr := fmt.Errorf("%w: send sendgrid email: %v", errSendGridTransient, err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: send sendgrid email status=%d body=%s", errSendGridTransient, status, raw)
			c.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("send sendgrid email status=%d body=%s", status, raw)
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.recordCircuitResult(nil)
	return nil
}

func (c *SendGridClient) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errSendGridTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}
