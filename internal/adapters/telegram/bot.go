// Package telegram is the messenger transport: long polling in, one scalar
// reply out per question
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"videobot/internal/platform/logger"
	"videobot/internal/services/answers/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// reply texts
const (
	UsageText = "Задайте вопрос о видео, креаторах или замерах статистики, например:\n" +
		"«Сколько всего видео есть в системе?»\n" +
		"«Сколько видео у креатора с id … вышло с 1 по 5 ноября 2025 включительно?»\n" +
		"В ответ придёт одно число."
	ThrottledText = "Слишком много вопросов подряд, попробуйте через минуту."
	ApologyText   = "Не удалось получить ответ, попробуйте позже."
)

const sweepEvery = 10 * time.Minute

// API is the slice of *tgbotapi.BotAPI the bot uses
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Dial authorizes the token against the Bot API
func Dial(o Options) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(o.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authorize bot: %w", err)
	}
	api.Debug = o.Debug
	logger.Named("telegram").Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")
	return api, nil
}

// Bot routes text messages to an asker and replies with the answer
type Bot struct {
	api   API
	asker domain.AskerPort
	opts  Options
	lim   *chatLimiter
	log   *logger.Logger
}

// New builds a bot over api
func New(api API, asker domain.AskerPort, o Options) *Bot {
	if api == nil || asker == nil {
		panic("telegram.Bot requires an API and an asker")
	}
	if o.PollTimeout <= 0 {
		o.PollTimeout = 60
	}
	return &Bot{
		api:   api,
		asker: asker,
		opts:  o,
		lim:   newChatLimiter(o.RatePerMinute, o.Burst),
		log:   logger.Named("telegram"),
	}
}

// Run long polls until ctx is done, handling each update on its own goroutine,
// and waits for in flight replies before returning
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	sweep := time.NewTicker(sweepEvery)
	defer sweep.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	b.log.Info().Int("poll_timeout", b.opts.PollTimeout).Msg("telegram polling started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("telegram polling stopped")
			return nil
		case <-sweep.C:
			if n := b.lim.sweep(); n > 0 {
				b.log.Debug().Int("chats", n).Msg("dropped idle chat limiters")
			}
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.Handle(ctx, upd)
			}()
		}
	}
}

// Handle answers one update; non message updates and empty text are ignored
func (b *Bot) Handle(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	ctx = logger.WithChat(logger.WithRequest(ctx, uuid.NewString()), msg.Chat.ID)
	log := logger.C(ctx)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.reply(ctx, msg, UsageText)
			return
		}
	}

	if !b.lim.Allow(msg.Chat.ID) {
		log.Warn().Msg("chat throttled")
		b.reply(ctx, msg, ThrottledText)
		return
	}

	start := time.Now()
	a, err := b.asker.Ask(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Msg("answer failed")
		b.reply(ctx, msg, ApologyText)
		return
	}
	log.Info().
		Str("intent", a.Intent.String()).
		Dur("took", time.Since(start)).
		Msg("question answered")
	b.reply(ctx, msg, a.Text)
}

func (b *Bot) reply(ctx context.Context, to *tgbotapi.Message, text string) {
	m := tgbotapi.NewMessage(to.Chat.ID, text)
	m.ReplyToMessageID = to.MessageID
	if _, err := b.api.Send(m); err != nil {
		logger.C(ctx).Error().Err(err).Msg("telegram send failed")
	}
}
