package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"household-hub/internal/reminder"
)

var summaryWindow int

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print reminder counts by bucket and domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, invalid, err := reminderSvc.Summary(cmd.Context(), summaryWindow)
		if err != nil {
			return err
		}
		window := summaryWindow
		if window <= 0 {
			window = reminderSvc.WindowDays()
		}
		fmt.Println(renderSummary(summary, window, len(invalid)))
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVarP(&summaryWindow, "window", "w", 0, "Upcoming window in days (default from config)")
}

func renderSummary(s reminder.Summary, window, invalid int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reminders") + "\n")

	row := func(label string, n int, style lipgloss.Style) {
		b.WriteString(labelStyle.Render(label) + style.Render(fmt.Sprint(n)) + "\n")
	}
	row("Active", s.Total, countStyle)
	overdue := countStyle
	if s.Overdue > 0 {
		overdue = overdueStyle
	}
	row("Overdue", s.Overdue, overdue)
	row("Due today", s.UpcomingToday, countStyle)
	row(fmt.Sprintf("Next %d days", window), s.UpcomingWeek, countStyle)

	if len(s.ByDomain) > 0 {
		b.WriteString("\n" + titleStyle.Render("By domain") + "\n")
		for _, dc := range s.ByDomain {
			row(fmt.Sprintf("%s %s", reminder.StyleFor(dc.Domain).Icon, dc.Domain), dc.Count, countStyle)
		}
	}
	if invalid > 0 {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("%d reminder(s) skipped: unreadable date", invalid)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
