package notify

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
	"github.com/riskibarqy/tennispal/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errTwilioTransient = crerr.New("twilio transient failure")

type TwilioConfig struct {
	BaseURL        string
	AccountSID     string
	AuthToken      string
	FromNumber     string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// TwilioClient sends SMS through the Twilio Messages API.
type TwilioClient struct {
	client         *fasthttp.Client
	messagesURL    string
	authHeader     string
	fromNumber     string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewTwilioClient(cfg TwilioConfig, logger *logging.Logger) *TwilioClient {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	credentials := strings.TrimSpace(cfg.AccountSID) + ":" + strings.TrimSpace(cfg.AuthToken)

	return &TwilioClient{
		client:         &fasthttp.Client{},
		messagesURL:    baseURL + "/2010-04-01/Accounts/" + strings.TrimSpace(cfg.AccountSID) + "/Messages.json",
		authHeader:     "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		fromNumber:     strings.TrimSpace(cfg.FromNumber),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *TwilioClient) SendSMS(ctx context.Context, toPhone, message string) error {
	toPhone = strings.TrimSpace(toPhone)
	if toPhone == "" {
		return crerr.New("recipient phone is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "twilio circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("twilio is temporarily unavailable: %w", err)
		}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	_, _ = body.WriteString("To=")
	_, _ = body.WriteString(url.QueryEscape(toPhone))
	_, _ = body.WriteString("&From=")
	_, _ = body.WriteString(url.QueryEscape(c.fromNumber))
	_, _ = body.WriteString("&Body=")
	_, _ = body.WriteString(url.QueryEscape(message))

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.messagesURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.authHeader)
	req.SetBody(body.Bytes())

	err := c.client.DoTimeout(req, resp, c.timeout)
	if err != nil {
		callErr := fmt.Errorf("%w: send twilio sms: %v", errTwilioTransient, err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: send twilio sms status=%d body=%s", errTwilioTransient, status, raw)
			c.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("send twilio sms status=%d body=%s", status, raw)
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.recordCircuitResult(nil)
	return nil
}

func (c *TwilioClient) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errTwilioTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
