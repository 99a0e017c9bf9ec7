package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// API is the part of *tgbotapi.BotAPI the bot needs.
type API interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api         API
	commands    *Commands
	pollTimeout int
	skipPending bool
}

// Run long-polls for updates and handles them one at a time until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	if b.skipPending {
		next, err := b.pendingOffset()
		if err != nil {
			return err
		}
		offset = next
	}

	u := tgbotapi.NewUpdate(offset)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	logrus.Infof("✅ Bot is polling for updates from offset %d", offset)
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// pendingOffset acknowledges everything queued while the bot was down
// and returns the offset of the first update to serve.
func (b *Bot) pendingOffset() (int, error) {
	pending, err := b.api.GetUpdates(tgbotapi.UpdateConfig{Offset: -1, Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("failed to skip pending updates: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return pending[len(pending)-1].UpdateID + 1, nil
}

// HandleUpdate replies to a known command; anything else is ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	var reply string
	switch msg.Command() {
	case CommandExchange:
		reply = b.commands.Exchange(ctx, msg.Text)
	case CommandRates:
		reply = b.commands.Rates(ctx)
	default:
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"chat_id": msg.Chat.ID,
			"command": msg.Command(),
		}).Error("reply wasn't sent")
	}
}

func NewBot(api API, commands *Commands, pollTimeoutSeconds int, skipPending bool) *Bot {
	return &Bot{api: api, commands: commands, pollTimeout: pollTimeoutSeconds, skipPending: skipPending}
}
