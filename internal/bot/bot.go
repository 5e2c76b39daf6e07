// Package bot delivers the dialogue engine over Telegram. Each chat owns
// one dialogue session; quick-reply options become inline keyboard buttons
// whose taps resubmit the option's full text.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"kira/internal/dialogue"
	"kira/internal/models"
)

const (
	callbackOptionPrefix = "o:"
	callbackCommitPrefix = "c:"
	commitButtonLabel    = "예약하기"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *dialogue.Engine
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*dialogue.Session
}

func New(token string, engine *dialogue.Engine, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:      api,
		engine:   engine,
		logger:   logger,
		sessions: make(map[int64]*dialogue.Session),
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		switch {
		case update.Message != nil:
			go b.handleMessage(update.Message)
		case update.CallbackQuery != nil:
			go b.handleCallback(update.CallbackQuery)
		}
	}

	return nil
}

// session returns the chat's dialogue session, creating and bootstrapping
// a fresh one on first contact.
func (b *Bot) session(ctx context.Context, chatID int64) *dialogue.Session {
	b.mu.Lock()
	s, exists := b.sessions[chatID]
	if !exists {
		s = dialogue.NewSession()
		b.sessions[chatID] = s
	}
	b.mu.Unlock()

	if !exists {
		if turn, err := b.engine.Bootstrap(ctx, s); err != nil {
			b.logger.Error("Bootstrap failed", zap.Error(err), zap.Int64("chat_id", chatID))
		} else {
			b.sendTurn(chatID, turn)
		}
	}
	return s
}

func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	delete(b.sessions, chatID)
	b.mu.Unlock()
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.resetSession(message.Chat.ID)
			b.session(ctx, message.Chat.ID)
		default:
			b.sendText(message.Chat.ID, "Unknown command. Just type what you need, or use /start to begin again.")
		}
		return
	}

	s := b.session(ctx, message.Chat.ID)
	b.submit(ctx, message.Chat.ID, s, message.Text)
}

func (b *Bot) submit(ctx context.Context, chatID int64, s *dialogue.Session, text string) {
	turn, err := b.engine.Submit(ctx, s, text)
	switch {
	case errors.Is(err, dialogue.ErrEmptyInput):
		b.sendText(chatID, "⚠️ Please enter a message first!")
		return
	case errors.Is(err, dialogue.ErrMissingCredential):
		b.sendText(chatID, "⚠️ Please set the OpenAI API key first!")
		return
	case err != nil:
		b.logger.Error("Submit failed", zap.Error(err), zap.Int64("chat_id", chatID))
		return
	}

	b.sendTurn(chatID, turn)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	ctx := context.Background()

	// Stop the client-side spinner regardless of the outcome.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Error("Failed to answer callback", zap.Error(err))
	}

	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	s := b.session(ctx, chatID)

	data := callback.Data
	switch {
	case strings.HasPrefix(data, callbackOptionPrefix):
		turnID, idx, ok := parseOptionCallback(strings.TrimPrefix(data, callbackOptionPrefix))
		if !ok {
			return
		}
		turn, found := s.Turn(turnID)
		if !found || idx >= len(turn.Options) {
			return
		}
		b.submit(ctx, chatID, s, turn.Options[idx].FullText)

	case strings.HasPrefix(data, callbackCommitPrefix):
		turnID := strings.TrimPrefix(data, callbackCommitPrefix)
		turn, err := b.engine.Commit(ctx, s, turnID)
		if err != nil {
			b.logger.Warn("Commit rejected",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
				zap.String("turn_id", turnID))
			return
		}
		b.sendTurn(chatID, turn)
	}
}

func parseOptionCallback(data string) (string, int, bool) {
	i := strings.LastIndex(data, ":")
	if i < 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(data[i+1:])
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return data[:i], idx, true
}

func (b *Bot) sendTurn(chatID int64, turn models.Turn) {
	msg := tgbotapi.NewMessage(chatID, turn.Bot)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range turn.Options {
		data := fmt.Sprintf("%s%s:%d", callbackOptionPrefix, turn.ID, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option.Label, data)))
	}
	if turn.Form != nil && turn.Form.CanCommit && !turn.Form.Committed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(commitButtonLabel, callbackCommitPrefix+turn.ID)))
	}
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
