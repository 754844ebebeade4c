package cli

import (
	"strings"
	"testing"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
)

func TestRenderSummary(t *testing.T) {
	out := renderSummary(reminder.Summary{
		Total: 4, Overdue: 1, UpcomingToday: 1, UpcomingWeek: 3,
		ByDomain: []reminder.DomainCount{{Domain: model.DomainPlants, Count: 4}},
	}, 7, 2)

	for _, want := range []string{"Reminders", "Next 7 days", "plants", "2 reminder(s) skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "sync", "summary", "mcp"} {
		cmd, _, err := RootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
