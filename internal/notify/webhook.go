package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"tempo/internal/core"
)

const webhookTimeout = 10 * time.Second

// maxAckSize bounds how much of the response body is read for the ack.
const maxAckSize = 64 * 1024

// Webhook POSTs notifications as JSON to a fixed URL. A non-2xx status
// or an "error" field in the response body is reported as an error;
// callers at the scheduling boundary discard it.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

func (w *Webhook) Notify(n core.Notification) error {
	payload, err := json.Marshal(struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{n.Title, n.Body})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAckSize))
	if err != nil {
		return fmt.Errorf("reading ack: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	// Some receivers report failure in-band with a 200.
	if gjson.ValidBytes(body) {
		if errField := gjson.GetBytes(body, "error"); errField.Exists() && errField.String() != "" {
			return fmt.Errorf("webhook rejected notification: %s", errField.String())
		}
	}
	return nil
}
