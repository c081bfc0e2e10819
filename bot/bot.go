// Package bot is the Telegram front end: it collects a service list and a
// generation date from the authorized chat, runs the document generator and
// delivers the artifacts back as files.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/linnik/docgen/infra/storage"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/domain"
	"github.com/linnik/docgen/pkg/service"
)

const (
	buttonGenerate = "📋 Создать документы"
	buttonStats    = "📊 Статистика"
	buttonHelp     = "❓ Помощь"

	callbackUseLast    = "use_last_services"
	callbackUpdateList = "update_services"
	callbackDateToday  = "date_today"
)

// chatState tracks the in-progress /generate dialog for one chat. Updates
// are consumed by a single goroutine, so no locking is needed.
type chatState struct {
	expectingServices bool
	pendingServices   []string
}

// Bot wires the Telegram API to the document generator and the service
// store.
type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    config.Telegram
	gen    *service.Generator
	store  *storage.FileStore
	logger *slog.Logger
	state  map[int64]*chatState
}

// New creates the bot from an authorized API client.
func New(api *tgbotapi.BotAPI, cfg config.Telegram, gen *service.Generator, store *storage.FileStore, logger *slog.Logger) *Bot {
	return &Bot{
		api:    api,
		cfg:    cfg,
		gen:    gen,
		store:  store,
		logger: logger,
		state:  map[int64]*chatState{},
	}
}

// authorized reports whether the chat may use the bot. A zero configured
// chat ID allows every chat.
func (b *Bot) authorized(chatID int64) bool {
	return b.cfg.ChatID == 0 || b.cfg.ChatID == chatID
}

func (b *Bot) chat(chatID int64) *chatState {
	st, ok := b.state[chatID]
	if !ok {
		st = &chatState{}
		b.state[chatID] = st
	}
	return st
}

// Run consumes updates until the context is cancelled. Generation requests
// are handled one at a time; overlapping requests serialize on this loop.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started", "authorized_chat", b.cfg.ChatID)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !b.authorized(msg.Chat.ID) {
		b.reply(msg.Chat.ID, "❌ Unauthorized access")
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sendWelcome(msg.Chat.ID)
		case "help":
			b.sendHelp(msg.Chat.ID)
		case "status":
			b.sendStatus(msg.Chat.ID)
		case "generate":
			b.startGenerate(msg.Chat.ID)
		default:
			b.reply(msg.Chat.ID, "Неизвестная команда. /help для списка команд.")
		}
		return
	}

	switch msg.Text {
	case buttonGenerate:
		b.startGenerate(msg.Chat.ID)
	case buttonStats:
		b.sendStatus(msg.Chat.ID)
	case buttonHelp:
		b.sendHelp(msg.Chat.ID)
	default:
		b.handleServicesInput(msg)
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	text := "🚀 Document Generator Bot\n\n" +
		"Я помогу создать документы (Счет и Акт).\n\n" +
		"Команды:\n" +
		"/generate — создать документы\n" +
		"/status — статистика генерации\n" +
		"/help — помощь"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonGenerate),
			tgbotapi.NewKeyboardButton(buttonStats),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonHelp),
		),
	)
	b.send(msg)
}

func (b *Bot) sendHelp(chatID int64) {
	b.reply(chatID,
		"📋 Как пользоваться:\n\n"+
			"1. /generate — начать\n"+
			"2. Используйте последние услуги или введите новые построчно\n"+
			"3. Подтвердите дату генерации\n"+
			"4. Получите готовые файлы\n\n"+
			"Одна строка — одна услуга.")
}

func (b *Bot) sendStatus(chatID int64) {
	stats := b.store.GetStats()
	last := "никогда"
	if stats.LastDate != nil {
		last = stats.LastDate.Format("02.01.2006 15:04")
	}
	b.reply(chatID, fmt.Sprintf(
		"📊 Статистика генерации:\n\nВсего сгенерировано: %d\nПоследняя генерация: %s\nУслуг в последнем отчете: %d\n\nПоследние услуги:\n%s",
		stats.Count, last, stats.LastServicesCount,
		formatServices(b.store.GetLastServices())))
}

func (b *Bot) startGenerate(chatID int64) {
	last := b.store.GetLastServices()
	if len(last) == 0 {
		b.chat(chatID).expectingServices = true
		b.reply(chatID, "📋 Нет сохраненных услуг.\n\nВведите список услуг (одна услуга на строку):")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📋 Последние услуги:\n\n%s\n\nИспользовать эти услуги или обновить список?",
		formatServices(last)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Использовать эти", callbackUseLast)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Обновить список", callbackUpdateList)),
	)
	b.send(msg)
}

func (b *Bot) handleServicesInput(msg *tgbotapi.Message) {
	st := b.chat(msg.Chat.ID)
	if !st.expectingServices {
		b.reply(msg.Chat.ID, "ℹ️ Используйте /generate для создания документов")
		return
	}

	services := parseServices(msg.Text)
	if len(services) == 0 {
		b.reply(msg.Chat.ID, "❌ Список услуг не может быть пустым. Попробуйте еще раз:")
		return
	}

	st.expectingServices = false
	b.confirmDate(msg.Chat.ID, services)
}

func (b *Bot) confirmDate(chatID int64, services []string) {
	b.chat(chatID).pendingServices = services

	today := time.Now()
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📅 Подтвердите дату генерации документов:\n\nУслуги (%d):\n%s",
		len(services), formatServices(services)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📅 Сегодня (%s)", today.Format("02.01.2006")),
				callbackDateToday)),
	)
	b.send(msg)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("callback ack failed", "error", err)
	}
	chatID := cb.Message.Chat.ID
	if !b.authorized(chatID) {
		return
	}

	switch cb.Data {
	case callbackUseLast:
		b.confirmDate(chatID, b.store.GetLastServices())
	case callbackUpdateList:
		b.chat(chatID).expectingServices = true
		b.reply(chatID, "📝 Введите новый список услуг (одна услуга на строку):")
	case callbackDateToday:
		b.runGeneration(ctx, chatID, b.chat(chatID).pendingServices, time.Now())
	}
}

func (b *Bot) runGeneration(ctx context.Context, chatID int64, services []string, on time.Time) {
	if len(services) == 0 {
		b.reply(chatID, "❌ Нет услуг для генерации. Используйте /generate.")
		return
	}

	b.reply(chatID, fmt.Sprintf("⏳ Генерирую документы...\n\n📋 Услуг: %d\n📅 Дата: %s",
		len(services), on.Format("02.01.2006")))

	inputs := make([]domain.ServiceInput, 0, len(services))
	for _, s := range services {
		inputs = append(inputs, domain.ServiceInput{Description: s})
	}

	res, err := b.gen.GenerateBoth(ctx, inputs, on)
	if err != nil {
		b.logger.Error("generation failed", "error", err)
		b.reply(chatID, "❌ Ошибка при генерации документов:\n"+err.Error())
		return
	}

	if err := b.store.SetLastServices(services); err != nil {
		b.logger.Warn("failed to persist services", "error", err)
	}

	b.reply(chatID, fmt.Sprintf(
		"✅ Документы успешно созданы!\n\n📋 Услуг: %d\n💰 Сумма: %d RUB\n📅 Дата: %s\n\n📄 Отправляю файлы...",
		len(services), res.Amount.Amount, on.Format("02.01.2006")))

	b.sendFile(chatID, res.ActPath, "📋 Акт оказанных услуг")
	b.sendFile(chatID, res.InvoicePath, "🧾 Счет на оплату")
}

func (b *Bot) sendFile(chatID int64, path, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("failed to send document", "path", filepath.Base(path), "error", err)
		b.reply(chatID, "❌ Не удалось отправить файл: "+filepath.Base(path))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("send failed", "error", err)
	}
}

// parseServices splits a message into service descriptions, one per
// non-blank line.
func parseServices(text string) []string {
	var services []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			services = append(services, line)
		}
	}
	return services
}

func formatServices(services []string) string {
	if len(services) == 0 {
		return "Нет сохраненных услуг"
	}
	var sb strings.Builder
	for i, s := range services {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(sb.String(), "\n")
}
