package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultMobizonURL = "https://api.mobizon.kz/service/message/sendsmsmessage"

// Client sends SMS through Mobizon. In dry-run mode nothing leaves the process.
type Client struct {
	ApiKey  string
	Sender  string // optional sender id
	DryRun  bool
	BaseURL string
	HTTP    *http.Client
}

type SendSMSResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewClientWithOptions(apiKey, sender string, dryRun bool) *Client {
	return &Client{
		ApiKey:  apiKey,
		Sender:  sender,
		DryRun:  dryRun,
		BaseURL: DefaultMobizonURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) dryRun() bool {
	return c.DryRun || c.ApiKey == "" || c.ApiKey == "dry-run"
}

func (c *Client) SendSMS(ctx context.Context, to, text string) (*SendSMSResponse, error) {
	if c.dryRun() {
		log.Printf("[mobizon][dry-run] to=%s sender=%q len=%d", to, c.Sender, len(text))
		return &SendSMSResponse{Code: 0}, nil
	}

	form := url.Values{
		"apiKey":    {c.ApiKey},
		"recipient": {to},
		"text":      {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read SMS response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mobizon http status %d", resp.StatusCode)
	}

	var result SendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("mobizon returned error code: %d (%s)", result.Code, result.Message)
	}
	log.Printf("[mobizon][send] to=%s messageID=%s", to, result.Data.MessageID)
	return &result, nil
}
