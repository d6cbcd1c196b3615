package services

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yeremiapane/housekeeping-app/config"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// TelegramService relays plain-text notifications to the configured chat
// through the Bot API. Best effort like web push.
type TelegramService struct {
	client *resty.Client
	token  string
	chatID string
}

func NewTelegramService(settings config.Settings) *TelegramService {
	return &TelegramService{
		client: resty.New().SetTimeout(10 * time.Second),
		token:  settings.TelegramToken,
		chatID: settings.TelegramChatID,
	}
}

func (ts *TelegramService) Enabled() bool {
	return ts.token != "" && ts.chatID != ""
}

// SendMessage posts one message to the chat.
func (ts *TelegramService) SendMessage(message string) error {
	if !ts.Enabled() {
		return fmt.Errorf("telegram relay is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", ts.token)
	resp, err := ts.client.R().
		SetBody(map[string]interface{}{
			"chat_id": ts.chatID,
			"text":    message,
		}).
		Post(url)
	if err != nil {
		utils.ErrorLogger.Printf("Telegram send error: %v", err)
		return err
	}
	if resp.IsError() {
		utils.ErrorLogger.Printf("Telegram API returned %s: %s", resp.Status(), resp.String())
		return fmt.Errorf("telegram API request failed: %s", resp.Status())
	}
	return nil
}
