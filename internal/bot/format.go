package bot

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"household-hub/internal/reminder"
)

const helpText = `<b>Commands</b>
/summary · counts by bucket and domain
/today · reminders due today
/overdue · reminders past their date
/upcoming · reminders due this week
/done &lt;id&gt; · mark a reminder completed
/dismiss &lt;id&gt; · dismiss a reminder
/sync · regenerate reminders from vehicles, renewals and documents
/stop · stop the daily digest`

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelLate),
			tgbotapi.NewKeyboardButton(menuLabelToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelWeek),
			tgbotapi.NewKeyboardButton(menuLabelStats),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func menuCommand(text string) (string, bool) {
	switch strings.TrimSpace(text) {
	case menuLabelToday:
		return "today", true
	case menuLabelWeek:
		return "upcoming", true
	case menuLabelLate:
		return "overdue", true
	case menuLabelStats:
		return "summary", true
	}
	return "", false
}

func listKeyboard(views []reminder.Classified) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(views))
	for _, v := range views {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+shortTitle(v.Title, 24), cbDonePrefix+v.ID),
			tgbotapi.NewInlineKeyboardButtonData("🔕 Dismiss", cbDismissPrefix+v.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func parseCallback(data string) (action, id string, ok bool) {
	for _, prefix := range []string{cbDonePrefix, cbDismissPrefix} {
		if strings.HasPrefix(data, prefix) {
			id = strings.TrimSpace(strings.TrimPrefix(data, prefix))
			return prefix, id, id != ""
		}
	}
	return "", "", false
}

func formatSummary(s reminder.Summary, windowDays, invalid int) string {
	var builder strings.Builder
	builder.WriteString("📊 <b>Reminder summary</b>\n")
	builder.WriteString(fmt.Sprintf("Active: <b>%d</b>\n", s.Total))
	builder.WriteString(fmt.Sprintf("⚠️ Overdue: %d\n", s.Overdue))
	builder.WriteString(fmt.Sprintf("⏰ Due today: %d\n", s.UpcomingToday))
	builder.WriteString(fmt.Sprintf("📆 Next %d days: %d\n", windowDays, s.UpcomingWeek))
	if len(s.ByDomain) > 0 {
		builder.WriteString("\n<b>By domain</b>\n")
		for _, dc := range s.ByDomain {
			builder.WriteString(fmt.Sprintf("%s %s: %d\n", reminder.StyleFor(dc.Domain).Icon, dc.Domain, dc.Count))
		}
	}
	if invalid > 0 {
		builder.WriteString(fmt.Sprintf("\n❗ %d reminder(s) have an unreadable date\n", invalid))
	}
	return strings.TrimSpace(builder.String())
}

func statusHeading(s reminder.Status) string {
	switch s {
	case reminder.StatusOverdue:
		return "⚠️ <b>Overdue</b>"
	case reminder.StatusDueToday:
		return "⏰ <b>Due today</b>"
	default:
		return "📆 <b>Coming up</b>"
	}
}

func statusPhrase(s reminder.Status) string {
	switch s {
	case reminder.StatusOverdue:
		return "overdue"
	case reminder.StatusDueToday:
		return "due today"
	default:
		return "coming up this week"
	}
}

func withinDays(views []reminder.Classified, days int) []reminder.Classified {
	out := views[:0:0]
	for _, v := range views {
		if v.DaysUntil <= days {
			out = append(out, v)
		}
	}
	return out
}

func shortTitle(title string, maxLen int) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}

// PlainNotice strips markup for callback toasts, which do not render HTML.
func PlainNotice(text string) string {
	text = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "").Replace(text)
	return html.UnescapeString(text)
}
