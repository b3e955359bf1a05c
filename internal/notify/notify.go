// Package notify delivers anomaly alerts to administrators. Alerts are
// best-effort: a notifier failure is logged and never fails the job that
// raised it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/metrics"
)

// Notifier is the admin alert sink.
type Notifier interface {
	Anomaly(ctx context.Context, component, message string)
}

// Nop discards all alerts. Used when no bot token is configured.
type Nop struct{}

func (Nop) Anomaly(context.Context, string, string) {}

// Telegram sends alerts to a set of admin chats via the Telegram Bot
// API.
type Telegram struct {
	token      string
	chatIDs    []int64
	httpClient *http.Client
}

// NewTelegram creates a Telegram notifier. With an empty token or no
// chat ids it degrades to a Nop.
func NewTelegram(token string, chatIDs []int64) Notifier {
	if token == "" || len(chatIDs) == 0 {
		log.Info().Msg("Admin alerts disabled: no Telegram token or chat ids configured")
		return Nop{}
	}
	return &Telegram{
		token:   token,
		chatIDs: chatIDs,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Anomaly sends one alert to every admin chat. Each send has its own
// timeout so a slow Telegram API cannot stall the caller for long.
func (t *Telegram) Anomaly(ctx context.Context, component, message string) {
	metrics.RecordAnomaly(component)
	text := fmt.Sprintf("[%s] %s", component, message)

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)
	for _, chatID := range t.chatIDs {
		body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode admin alert")
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			cancel()
			log.Error().Err(err).Msg("Failed to build admin alert request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.httpClient.Do(req)
		cancel()
		if err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("Admin alert delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Warn().Int("status", resp.StatusCode).Int64("chat_id", chatID).Msg("Admin alert rejected")
		}
	}
}

// Recorder captures alerts in memory for tests.
type Recorder struct {
	Alerts []RecordedAlert
}

// RecordedAlert is one captured alert.
type RecordedAlert struct {
	Component string
	Message   string
}

func (r *Recorder) Anomaly(_ context.Context, component, message string) {
	r.Alerts = append(r.Alerts, RecordedAlert{Component: component, Message: message})
}
