package reminder

import (
	"sort"
	"time"

	"household-hub/internal/model"
)

// DefaultWindowDays is the width of the "this week" bucket.
const DefaultWindowDays = 7

// DomainCount is the number of active reminders in one domain.
type DomainCount struct {
	Domain model.Domain `json:"domain"`
	Count  int          `json:"count"`
}

// Summary aggregates the active reminders of a set.
type Summary struct {
	Total         int           `json:"total"`
	Overdue       int           `json:"overdue"`
	UpcomingToday int           `json:"upcoming_today"`
	UpcomingWeek  int           `json:"upcoming_week"`
	ByDomain      []DomainCount `json:"by_domain"`
}

// Summarize counts active reminders by bucket and domain. Reminders with an
// invalid date are left out and reported in the returned error list; they
// never abort the summary. ByDomain is sorted by domain name. A negative
// windowDays uses DefaultWindowDays; zero counts only today.
func Summarize(reminders []model.Reminder, now time.Time, windowDays int) (Summary, []error) {
	if windowDays < 0 {
		windowDays = DefaultWindowDays
	}

	var (
		summary Summary
		invalid []error
	)
	byDomain := make(map[model.Domain]int)

	for _, r := range reminders {
		status, days, err := classify(r, now)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		if !status.Active() {
			continue
		}

		summary.Total++
		byDomain[r.Domain]++
		switch status {
		case StatusOverdue:
			summary.Overdue++
		case StatusDueToday:
			summary.UpcomingToday++
		}
		if days >= 0 && days <= windowDays {
			summary.UpcomingWeek++
		}
	}

	summary.ByDomain = make([]DomainCount, 0, len(byDomain))
	for domain, count := range byDomain {
		summary.ByDomain = append(summary.ByDomain, DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(summary.ByDomain, func(i, j int) bool {
		return summary.ByDomain[i].Domain < summary.ByDomain[j].Domain
	})

	return summary, invalid
}
