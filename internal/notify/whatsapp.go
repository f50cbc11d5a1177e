package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsApp delivers alerts through a WAHA gateway (POST /api/sendText).
type WhatsApp struct {
	BaseURL string
	APIKey  string
	Session string
	ChatID  string
	Client  *http.Client
}

// NewWhatsApp returns nil when the gateway URL or chat is unset, which
// Multi skips.
func NewWhatsApp(baseURL, apiKey, session, chatID string) *WhatsApp {
	if baseURL == "" || chatID == "" {
		return nil
	}
	if session == "" {
		session = "default"
	}
	return &WhatsApp{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Session: session,
		ChatID:  chatID,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type wahaSendText struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

func (w *WhatsApp) Send(ctx context.Context, title, text string) error {
	if w == nil || w.BaseURL == "" {
		return fmt.Errorf("whatsapp disabled")
	}
	body, _ := json.Marshal(wahaSendText{
		Session: w.Session,
		ChatID:  w.ChatID,
		Text:    "*" + title + "*\n" + text,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL+"/api/sendText", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.APIKey != "" {
		req.Header.Set("X-Api-Key", w.APIKey)
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("waha sendText: status %s", resp.Status)
	}
	return nil
}
