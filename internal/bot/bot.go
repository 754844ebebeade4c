package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
	"household-hub/internal/repository"
	"household-hub/internal/service"
)

const (
	cbDonePrefix    = "done:"
	cbDismissPrefix = "dismiss:"
)

const (
	maxListed      = 20
	menuLabelToday = "⏰ Today"
	menuLabelWeek  = "📆 Upcoming"
	menuLabelLate  = "⚠️ Overdue"
	menuLabelStats = "📊 Summary"
)

// Bot aggregates Telegram API with services.
type Bot struct {
	api         *tgbotapi.BotAPI
	userRepo    *repository.UserRepository
	reminderSvc *service.ReminderService
}

func New(token string, userRepo *repository.UserRepository, reminderSvc *service.ReminderService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		userRepo:    userRepo,
		reminderSvc: reminderSvc,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
	}
	if command, ok := menuCommand(msg.Text); ok {
		return b.handleCommand(ctx, msg, command, "")
	}
	return b.sendText(msg.Chat.ID, "I did not understand that. Send /help for the list of commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, command, args string) error {
	chatID := msg.Chat.ID
	switch command {
	case "start":
		return b.handleStart(ctx, msg)
	case "stop":
		if err := b.userRepo.SetDigest(ctx, msg.From.ID, false); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return b.sendText(chatID, "🔕 Daily digest turned off. Send /start to turn it back on.")
	case "help":
		return b.sendText(chatID, helpText)
	case "summary":
		return b.handleSummary(ctx, chatID)
	case "today":
		return b.sendList(ctx, chatID, reminder.StatusDueToday)
	case "overdue":
		return b.sendList(ctx, chatID, reminder.StatusOverdue)
	case "upcoming":
		return b.sendList(ctx, chatID, reminder.StatusUpcoming)
	case "done":
		return b.resolve(ctx, chatID, cbDonePrefix, args)
	case "dismiss":
		return b.resolve(ctx, chatID, cbDismissPrefix, args)
	case "sync":
		res, err := b.reminderSvc.Sync(ctx)
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Sync failed: %s", escape(err.Error())))
		}
		return b.sendText(chatID, fmt.Sprintf("🔄 Sync finished: %d created, %d updated, %d unchanged.", res.Created, res.Updated, res.Unchanged))
	default:
		return b.sendText(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return b.sendText(msg.Chat.ID, "Could not register you, please try again later.")
	}
	if !user.DigestEnabled {
		if err := b.userRepo.SetDigest(ctx, user.TelegramID, true); err != nil {
			return err
		}
	}
	name := strings.TrimSpace(user.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s! You will get a daily digest of household reminders.\n\n%s", escape(name), helpText)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleSummary(ctx context.Context, chatID int64) error {
	summary, invalid, err := b.reminderSvc.Summary(ctx, 0)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not build the summary: %s", escape(err.Error())))
	}
	return b.sendText(chatID, formatSummary(summary, b.reminderSvc.WindowDays(), len(invalid)))
}

func (b *Bot) sendList(ctx context.Context, chatID int64, status reminder.Status) error {
	views, _, err := b.reminderSvc.List(ctx, service.ListFilter{Status: status})
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load reminders: %s", escape(err.Error())))
	}
	if status == reminder.StatusUpcoming {
		views = withinDays(views, b.reminderSvc.WindowDays())
	}
	if len(views) == 0 {
		return b.sendText(chatID, fmt.Sprintf("Nothing %s. 🎉", statusPhrase(status)))
	}
	if len(views) > maxListed {
		views = views[:maxListed]
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s\n\n", statusHeading(status)))
	for _, v := range views {
		builder.WriteString(service.FormatReminder(v))
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = listKeyboard(views)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) resolve(ctx context.Context, chatID int64, action, id string) error {
	if id == "" {
		return b.sendText(chatID, fmt.Sprintf("Pass the reminder id, for example /%s 0b6c...", strings.TrimSuffix(action, ":")))
	}
	text, err := b.applyAction(ctx, action, id)
	if err != nil {
		return err
	}
	return b.sendText(chatID, text)
}

// applyAction resolves a reminder and returns the reply text. Only storage
// failures are returned as errors.
func (b *Bot) applyAction(ctx context.Context, action, id string) (string, error) {
	var (
		r    *model.Reminder
		next *model.Reminder
		err  error
	)
	switch action {
	case cbDonePrefix:
		r, next, err = b.reminderSvc.Complete(ctx, id)
	case cbDismissPrefix:
		r, err = b.reminderSvc.Dismiss(ctx, id)
	default:
		return "Unknown action.", nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "Reminder not found.", nil
	case errors.Is(err, repository.ErrAlreadyResolved):
		return "This reminder was already completed or dismissed.", nil
	case err != nil:
		return "", err
	}

	text := fmt.Sprintf("✅ Done: %s", escape(r.Title))
	if action == cbDismissPrefix {
		text = fmt.Sprintf("🔕 Dismissed: %s", escape(r.Title))
	}
	if next != nil {
		text += fmt.Sprintf("\n♻️ Next on %s", next.ReminderDate)
	}
	return text, nil
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	action, id, ok := parseCallback(cb.Data)
	if !ok {
		return nil
	}
	log.Printf("[info] callback %s user=%d reminder=%s", strings.TrimSuffix(action, ":"), cb.From.ID, id)

	text, err := b.applyAction(ctx, action, id)
	if err != nil {
		text = "Something went wrong, please try again."
	}
	if _, ackErr := b.api.Request(tgbotapi.NewCallback(cb.ID, PlainNotice(text))); ackErr != nil {
		log.Printf("callback ack: %v", ackErr)
	}
	if err != nil {
		return err
	}
	return b.sendText(cb.Message.Chat.ID, text)
}

// Name identifies the bot as a digest channel.
func (b *Bot) Name() string { return "telegram" }

// SendDigest delivers the daily digest to every subscribed chat.
func (b *Bot) SendDigest(ctx context.Context, _ string, body string) error {
	return b.SendDailyReports(ctx, body)
}

// SendDailyReports sends text to every user who has not opted out.
func (b *Bot) SendDailyReports(ctx context.Context, text string) error {
	users, err := b.userRepo.ListDigestRecipients(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send digest to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}
