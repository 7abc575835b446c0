package smsgateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"herald/config"
)

// ErrDisabled is returned when the SMS transport is switched off in config.
var ErrDisabled = errors.New("sms transport disabled")

// Client talks to a form-POST SMS gateway (HostPinnacle-style API).
type Client struct {
	cfg    config.SMSConfig
	client *http.Client
}

func New(cfg config.SMSConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the transport is configured to send.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

// Send posts one text message to the gateway. to must already be in
// international form.
func (c *Client) Send(ctx context.Context, to, message string) error {
	if !c.cfg.Enabled {
		return ErrDisabled
	}

	form := url.Values{}
	form.Set("userid", c.cfg.UserID)
	form.Set("password", c.cfg.Password)
	form.Set("senderid", c.cfg.SenderID)
	form.Set("sendMethod", "quick")
	form.Set("msgType", "text")
	form.Set("msg", message)
	form.Set("mobile", to)
	form.Set("duplicatecheck", "true")
	form.Set("output", "json")

	apiURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms http error: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms api error (status %d): %s", resp.StatusCode, string(body))
	}
	log.Printf("[SMS] sent to %s in %v", to, time.Since(start))
	return nil
}
