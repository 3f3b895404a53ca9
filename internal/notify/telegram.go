package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/event"
)

// TelegramNotifier delivers pipeline failure events to an operations chat
// and mirrors each one into a local error report file. Delivery failures are
// logged and swallowed: an alerting outage never fails a pipeline.
type TelegramNotifier struct {
	BotToken  string
	ChatID    string
	ReportDir string
	client    *http.Client
}

func NewTelegramNotifier() *TelegramNotifier {
	reportDir := os.Getenv("ERROR_REPORT_DIR")
	if reportDir == "" {
		reportDir = "."
	}
	return &TelegramNotifier{
		BotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:    os.Getenv("TELEGRAM_CHAT_ID"),
		ReportDir: reportDir,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Listen consumes failure events until the channel closes. Run it in its
// own goroutine.
func (n *TelegramNotifier) Listen(events <-chan event.Failure) {
	for failure := range events {
		n.Notify(failure)
	}
}

// Notify delivers one failure synchronously: report file first, then the
// chat message. Short-lived callers use this directly so delivery completes
// before they exit.
func (n *TelegramNotifier) Notify(failure event.Failure) {
	n.writeReport(failure)

	text := fmt.Sprintf("[%s] %s ingestion failed for enterprise %s: %s",
		failure.ErrorKind, failure.Kind, failure.Enterprise, failure.Detail)
	if err := n.send(text); err != nil {
		log.Printf("notify: telegram delivery failed: %v", err)
	}
}

func (n *TelegramNotifier) send(text string) error {
	if n.BotToken == "" || n.ChatID == "" {
		return fmt.Errorf("telegram credentials not configured")
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.BotToken)
	resp, err := n.client.PostForm(endpoint, url.Values{
		"chat_id": {n.ChatID},
		"text":    {text},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("telegram API status %d: %s", resp.StatusCode, apiErr.Description)
	}
	return nil
}

// writeReport appends the failure to a per-day report file so alerts survive
// chat history.
func (n *TelegramNotifier) writeReport(failure event.Failure) {
	name := fmt.Sprintf("error_report_%s.txt", failure.At.Format("20060102"))
	path := filepath.Join(n.ReportDir, name)

	line := strings.Join([]string{
		failure.At.Format(time.RFC3339),
		failure.Enterprise,
		failure.Kind,
		failure.ErrorKind,
		failure.Detail,
	}, " | ") + "\n"

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("notify: cannot open error report %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		log.Printf("notify: cannot write error report: %v", err)
	}
}
