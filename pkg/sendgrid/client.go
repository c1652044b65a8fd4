package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/harrowdigital/printdesk-backend/pkg/config"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

const (
	mailSendEndpoint = "https://api.sendgrid.com/v3/mail/send"
	requestTimeout   = 10 * time.Second
	retryBase        = 500 * time.Millisecond
)

// Message is one outbound email with both body renderings.
type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Client is a minimal SendGrid v3 mail-send transport. Requests that fail
// with 429 or a 5xx are retried with exponential backoff.
type Client struct {
	httpClient *http.Client
	apiKey     string
	fromEmail  string
	fromName   string
	replyTo    string
	maxRetries uint64
	endpoint   string
}

func NewClient(cfg config.MailConfig, logg *logger.Logger) (*Client, error) {
	if cfg.SendgridAPIKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("mail from address is required")
	}
	maxRetries := uint64(cfg.MaxRetries)
	if cfg.MaxRetries <= 0 {
		maxRetries = 3
	}
	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     cfg.SendgridAPIKey,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.SenderName,
		replyTo:    cfg.ReplyTo,
		maxRetries: maxRetries,
		endpoint:   mailSendEndpoint,
	}
	if logg != nil {
		logg.Info(context.Background(), "sendgrid client initialized")
	}
	return client, nil
}

// SetEndpoint overrides the mail-send URL. Test hook.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Send dispatches the message, retrying transient transport failures.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return errors.New("recipient email is required")
	}

	payload, err := json.Marshal(c.buildPayload(msg))
	if err != nil {
		return fmt.Errorf("encoding mail payload: %w", err)
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.post(ctx, payload)
	})
}

func (c *Client) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("sending mail: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	sendErr := fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return retry.RetryableError(sendErr)
	}
	return sendErr
}

type mailPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	ReplyTo          *address          `json:"reply_to,omitempty"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *Client) buildPayload(msg Message) mailPayload {
	payload := mailPayload{
		Personalizations: []personalization{{
			To: []address{{Email: msg.ToEmail, Name: msg.ToName}},
		}},
		From:    address{Email: c.fromEmail, Name: c.fromName},
		Subject: msg.Subject,
		Content: []content{
			{Type: "text/plain", Value: msg.PlainBody},
			{Type: "text/html", Value: msg.HTMLBody},
		},
	}
	if c.replyTo != "" {
		payload.ReplyTo = &address{Email: c.replyTo}
	}
	return payload
}
