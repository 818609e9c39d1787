// internal/service/payment/telegram.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBotAPIBase = "https://api.telegram.org"

// BotClient is a thin Telegram Bot API client covering the single method the
// payment flow needs: createInvoiceLink for Stars invoices.
type BotClient struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewBotClient(token string, httpClient *http.Client) *BotClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BotClient{
		token:   token,
		baseURL: defaultBotAPIBase,
		http:    httpClient,
	}
}

type invoiceLinkRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Payload     string         `json:"payload"`
	Currency    string         `json:"currency"`
	Prices      []labeledPrice `json:"prices"`
}

type labeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type botAPIResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// CreateInvoiceLink creates a Stars (XTR) invoice. The payload carries our
// payment id so the successful_payment update can be correlated.
func (c *BotClient) CreateInvoiceLink(ctx context.Context, title, description, payload string, stars int64) (string, error) {
	body, err := json.Marshal(invoiceLinkRequest{
		Title:       title,
		Description: description,
		Payload:     payload,
		Currency:    "XTR",
		Prices:      []labeledPrice{{Label: title, Amount: stars}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode invoice request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/createInvoiceLink", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("bot api request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read bot api response: %w", err)
	}

	var apiResp botAPIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode bot api response: %w", err)
	}
	if !apiResp.OK {
		return "", fmt.Errorf("bot api error: %s", apiResp.Description)
	}

	var link string
	if err := json.Unmarshal(apiResp.Result, &link); err != nil {
		return "", fmt.Errorf("unexpected invoice link result: %w", err)
	}
	return link, nil
}
