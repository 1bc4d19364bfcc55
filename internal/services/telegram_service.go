package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/inventory"
	"github.com/example/aromance/internal/logger"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     defaultTelegramAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// WithAPIBase points the service at another Bot API endpoint.
func (s *TelegramService) WithAPIBase(base string) *TelegramService {
	s.apiBase = strings.TrimRight(base, "/")
	return s
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		logger.Debug().Msg("telegram bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return errx.New(errx.KindInternal, "encode telegram message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errx.New(errx.KindInternal, "build telegram request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram send failed")
		return errx.New(errx.KindStorage, "send telegram message", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Msg("telegram unexpected status")
		return errx.New(errx.KindStorage, fmt.Sprintf("telegram returned status %d", resp.StatusCode), nil)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		logger.Debug().Msg("telegram admin chat not configured")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

// FormatPrice formats price with currency and thousand separators.
func FormatPrice(amount int64, currency string) string {
	if currency == "" {
		currency = "IDR"
	}
	str := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	var result strings.Builder
	if negative {
		result.WriteString("-")
	}
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(".")
		}
		result.WriteRune(digit)
	}

	return currency + " " + result.String()
}

// NotifyRecommendations posts a finished batch to the admin chat.
func (s *TelegramService) NotifyRecommendations(ctx context.Context, n RecommendationNotification) error {
	if s.adminChatID == "" {
		return nil
	}
	return s.SendToAdmin(ctx, FormatRecommendations(n))
}

// FormatRecommendations renders a notification as Telegram HTML.
func FormatRecommendations(n RecommendationNotification) string {
	var b strings.Builder
	b.WriteString("<b>New recommendations</b>\n")
	fmt.Fprintf(&b, "<b>Session:</b> %s\n", html.EscapeString(n.SessionID))
	fmt.Fprintf(&b, "<b>User:</b> %s\n", html.EscapeString(n.UserID))
	if n.Archetype != "" {
		fmt.Fprintf(&b, "<b>Profile:</b> %s\n", html.EscapeString(n.Archetype))
	}

	if len(n.Recommendations) == 0 {
		b.WriteString("\nNo product met the threshold.\n")
	}
	for i, rec := range n.Recommendations {
		fmt.Fprintf(&b, "\n%d. <b>%s</b> (%s)\n   %s, %.0f%%\n   <i>%s</i>\n",
			i+1,
			html.EscapeString(rec.Name),
			html.EscapeString(rec.Brand),
			FormatPrice(rec.Price, ""),
			rec.Score*100,
			html.EscapeString(rec.Reasoning),
		)
	}

	if n.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", html.EscapeString(n.Summary))
	}
	return strings.TrimSpace(b.String())
}

// NotifyStockAlerts posts restock alerts to the admin chat.
func (s *TelegramService) NotifyStockAlerts(ctx context.Context, alerts []inventory.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return s.SendToAdmin(ctx, FormatStockAlerts(alerts))
}

// FormatStockAlerts renders restock alerts as Telegram HTML in the given
// order.
func FormatStockAlerts(alerts []inventory.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Stock alerts (%d)</b>\n", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&b, "\n[%s] %s", strings.ToUpper(string(a.Severity)), html.EscapeString(a.Message))
		if a.Restock > 0 {
			fmt.Fprintf(&b, "\n   restock %d units", a.Restock)
		}
	}
	return b.String()
}
