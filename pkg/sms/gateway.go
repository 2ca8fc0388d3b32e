package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GatewayClient sends messages to an HTTP SMS gateway.
type GatewayClient struct {
	url    string
	secret string
	from   string
	client *http.Client
}

// GatewayOption configures a GatewayClient.
type GatewayOption func(*GatewayClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *GatewayClient) {
		if c != nil {
			g.client = c
		}
	}
}

// gatewayRequest is the JSON body posted to the gateway.
type gatewayRequest struct {
	ID   string `json:"id"`
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewGatewayClient validates cfg and builds a client.
func NewGatewayClient(cfg Config, opts ...GatewayOption) (*GatewayClient, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("%w: GatewayURL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(cfg.GatewayURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https gateways are supported", ErrInvalidConfig)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: gateway host is required", ErrInvalidConfig)
	}
	if cfg.SigningSecret == "" {
		return nil, fmt.Errorf("%w: SigningSecret is required", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	g := &GatewayClient{
		url:    cfg.GatewayURL,
		secret: cfg.SigningSecret,
		from:   cfg.SenderID,
		client: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Send posts msg to the gateway once. Any non-2xx status is a failure.
func (g *GatewayClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()
	payload, err := json.Marshal(gatewayRequest{ID: id, From: g.from, To: msg.To, Body: msg.Body})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %w", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrSendFailed, err)
	}

	ts := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "restock-sms/1.0")
	req.Header.Set(HeaderSignature, Sign(g.secret, ts, payload))
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderMessageID, id)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// keep error text short and on one line
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		text := strings.ReplaceAll(strings.TrimSpace(string(body)), "\n", " ")
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		return fmt.Errorf("%w: gateway returned status %d: %s", ErrSendFailed, resp.StatusCode, text)
	}
	return nil
}
