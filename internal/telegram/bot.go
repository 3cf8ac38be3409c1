package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	startCmd = "start"
	helpCmd  = "help"
	statsCmd = "stats"
)

const usageText = "Привет! Я магазинный консультант.\n" +
	"Напиши что-нибудь вроде: 'хочу кроссовки для бега до 8000' — я посоветую."

const adminOnlyText = "Команда доступна только администратору"

// MessageHandler answers a user's free-text message. It must always return text.
type MessageHandler interface {
	Handle(ctx context.Context, userID int64, text string) string
}

// ReportFunc renders the statistics report for the administrator.
type ReportFunc func(ctx context.Context) (string, error)

type Bot struct {
	updates     updateSource
	s           sender
	handler     MessageHandler
	report      ReportFunc
	adminUserID int64
	sem         chan struct{}
	wg          sync.WaitGroup
	log         *zap.Logger
}

// New connects to the Bot API. maxConcurrent bounds how many messages are
// processed at the same time.
func New(botToken string, handler MessageHandler, adminUserID int64, maxConcurrent int, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return newBot(api, botAPISender{api: api}, handler, adminUserID, maxConcurrent, log), nil
}

func newBot(updates updateSource, s sender, handler MessageHandler, adminUserID int64, maxConcurrent int, log *zap.Logger) *Bot {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		updates:     updates,
		s:           s,
		handler:     handler,
		adminUserID: adminUserID,
		sem:         make(chan struct{}, maxConcurrent),
		log:         log,
	}
}

// SetReporter enables the admin /stats command.
func (b *Bot) SetReporter(f ReportFunc) {
	b.report = f
}

// Start polls updates until ctx is cancelled, then waits for in-flight messages.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.updates.GetUpdatesChan(u)
	b.log.Info("bot started")

	defer func() {
		b.wg.Wait()
		b.log.Info("bot stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			if !b.dispatch(ctx, update.Message) {
				b.updates.StopReceivingUpdates()
				return
			}
		}
	}
}

// dispatch runs msg on its own goroutine once a slot is free. In-flight
// messages are allowed to finish after ctx is cancelled.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) bool {
	select {
	case b.sem <- struct{}{}:
	case <-ctx.Done():
		return false
	}
	b.wg.Add(1)
	go func() {
		defer func() {
			<-b.sem
			b.wg.Done()
		}()
		b.handleIncomingMessage(context.WithoutCancel(ctx), msg)
	}()
	return true
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Text == "" {
		b.sendMessage(msg.Chat.ID, usageText)
		return
	}

	b.sendTyping(msg.Chat.ID)
	answer := b.handler.Handle(ctx, msg.From.ID, msg.Text)

	out := tgbotapi.NewMessage(msg.Chat.ID, answer)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.s.Send(out); err != nil {
		b.log.Error("failed to send answer", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case startCmd, helpCmd:
		b.sendMessage(msg.Chat.ID, usageText)
	case statsCmd:
		if b.adminUserID == 0 || msg.From.ID != b.adminUserID {
			b.sendMessage(msg.Chat.ID, adminOnlyText)
			return
		}
		if b.report == nil {
			b.sendMessage(msg.Chat.ID, "Статистика недоступна")
			return
		}
		text, err := b.report(ctx)
		if err != nil {
			b.log.Error("failed to build stats report", zap.Error(err))
			b.sendMessage(msg.Chat.ID, "Не удалось собрать статистику")
			return
		}
		b.sendMessage(msg.Chat.ID, text)
	default:
		b.sendMessage(msg.Chat.ID, usageText)
	}
}

// NotifyAdmin sends text to the administrator, if one is configured.
func (b *Bot) NotifyAdmin(text string) {
	if b.adminUserID == 0 {
		return
	}
	b.sendMessage(b.adminUserID, text)
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.s.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug("failed to send typing action", zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
