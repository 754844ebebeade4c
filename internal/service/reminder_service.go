package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
	"household-hub/internal/repository"
)

// ErrValidation marks errors caused by bad input.
var ErrValidation = errors.New("validation failed")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// SourceLister provides the household records reminders are generated from.
type SourceLister interface {
	Sources(ctx context.Context) ([]reminder.Source, error)
}

// ReminderInput represents data required to create a reminder.
type ReminderInput struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Domain       model.Domain     `json:"domain"`
	ReminderDate string           `json:"reminder_date"`
	Priority     model.Priority   `json:"priority"`
	Recurrence   model.Recurrence `json:"recurrence"`
	RecurDay     int              `json:"recur_day"`
}

// ListFilter selects reminders for List. An empty Status means every active reminder.
type ListFilter struct {
	Status     reminder.Status
	Domain     model.Domain
	EntityType string
}

// SyncResult reports what a generation pass wrote.
type SyncResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// ReminderOptions tune ReminderService. Zero values fall back to defaults.
type ReminderOptions struct {
	WindowDays    int
	LookaheadDays int
	Location      *time.Location
	Now           func() time.Time
}

// ReminderService wraps reminder business logic around the engine.
type ReminderService struct {
	repo          *repository.ReminderRepository
	sources       SourceLister
	windowDays    int
	lookaheadDays int
	loc           *time.Location
	clock         func() time.Time

	// syncMu serialises generation passes so two of them never plan the same creation.
	syncMu sync.Mutex
}

func NewReminderService(repo *repository.ReminderRepository, sources SourceLister, opts ReminderOptions) *ReminderService {
	s := &ReminderService{
		repo:          repo,
		sources:       sources,
		windowDays:    opts.WindowDays,
		lookaheadDays: opts.LookaheadDays,
		loc:           opts.Location,
		clock:         opts.Now,
	}
	if s.windowDays <= 0 {
		s.windowDays = reminder.DefaultWindowDays
	}
	if s.lookaheadDays <= 0 {
		s.lookaheadDays = reminder.DefaultLookaheadDays
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// Now returns the current time in the configured timezone.
func (s *ReminderService) Now() time.Time {
	return s.clock().In(s.loc)
}

// WindowDays is the default width of the upcoming bucket.
func (s *ReminderService) WindowDays() int {
	return s.windowDays
}

// List returns reminders with their derived fields, most urgent first.
// Reminders whose date cannot be parsed are reported separately.
func (s *ReminderService) List(ctx context.Context, filter ListFilter) ([]reminder.Classified, []error, error) {
	if filter.Status != "" {
		if _, ok := reminder.ParseStatus(string(filter.Status)); !ok {
			return nil, nil, invalidf("unknown status %q", filter.Status)
		}
	}
	if filter.Domain != "" && !filter.Domain.Valid() {
		return nil, nil, invalidf("unknown domain %q", filter.Domain)
	}

	stored, err := s.repo.List(ctx, repository.ReminderFilter{
		Domain:          filter.Domain,
		EntityType:      filter.EntityType,
		IncludeResolved: filter.Status != "" && !filter.Status.Active(),
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	views := make([]reminder.Classified, 0, len(stored))
	var invalid []error
	for _, r := range stored {
		view, err := reminder.Annotate(r, now)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		if filter.Status != "" && view.Status != filter.Status {
			continue
		}
		views = append(views, view)
	}
	logInvalid("list", invalid)

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil < b.DaysUntil
		}
		return a.Title < b.Title
	})
	return views, invalid, nil
}

// Get returns one reminder with its derived fields.
func (s *ReminderService) Get(ctx context.Context, id string) (reminder.Classified, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return reminder.Classified{}, err
	}
	return reminder.Annotate(*r, s.Now())
}

func (s *ReminderService) Create(ctx context.Context, input ReminderInput) (*model.Reminder, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidf("title is required")
	}
	if input.Domain == "" {
		input.Domain = model.DomainCustom
	}
	if !input.Domain.Valid() {
		return nil, invalidf("unknown domain %q", input.Domain)
	}
	date := strings.TrimSpace(input.ReminderDate)
	if _, err := reminder.ParseDate(date, s.loc); err != nil {
		return nil, invalidf("reminder_date: %v", err)
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, invalidf("unknown priority %q", input.Priority)
	}
	if !input.Recurrence.Valid() {
		return nil, invalidf("unknown recurrence %q", input.Recurrence)
	}
	if input.Recurrence == "" {
		input.Recurrence = model.RecurNone
	}
	if input.RecurDay < 0 || input.RecurDay > 31 {
		return nil, invalidf("recur_day must be between 1 and 31")
	}

	r := model.Reminder{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Domain:       input.Domain,
		ReminderDate: date,
		Priority:     input.Priority,
		Recurrence:   input.Recurrence,
		RecurDay:     input.RecurDay,
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Complete resolves a reminder. For recurring reminders the next occurrence
// is created in the same transaction and returned as the second value.
func (s *ReminderService) Complete(ctx context.Context, id string) (*model.Reminder, *model.Reminder, error) {
	now := s.Now()
	var completed, next *model.Reminder
	err := s.repo.Transaction(ctx, func(tx *repository.ReminderRepository) error {
		r, err := tx.MarkCompleted(ctx, id, now)
		if err != nil {
			return err
		}
		completed = r

		successor, ok, err := reminder.Successor(*r, now)
		if err != nil {
			log.Printf("[warn] reminder %s: no successor: %v", id, err)
			return nil
		}
		if !ok {
			return nil
		}
		if err := tx.Create(ctx, &successor); err != nil {
			return err
		}
		next = &successor
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if next != nil {
		log.Printf("[info] reminder %s completed, next occurrence %s on %s", id, next.ID, next.ReminderDate)
	}
	return completed, next, nil
}

func (s *ReminderService) Dismiss(ctx context.Context, id string) (*model.Reminder, error) {
	return s.repo.MarkDismissed(ctx, id, s.Now())
}

// Summary aggregates the active reminders. windowDays <= 0 uses the configured window.
func (s *ReminderService) Summary(ctx context.Context, windowDays int) (reminder.Summary, []error, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}
	active, err := s.repo.List(ctx, repository.ReminderFilter{})
	if err != nil {
		return reminder.Summary{}, nil, err
	}
	summary, invalid := reminder.Summarize(active, s.Now(), windowDays)
	logInvalid("summary", invalid)
	return summary, invalid, nil
}

// Sync generates reminders from the household records and stores the result.
func (s *ReminderService) Sync(ctx context.Context) (SyncResult, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	sources, err := s.sources.Sources(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	existing, err := s.repo.ListGenerated(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	plan := reminder.Generate(sources, existing, s.Now(), s.lookaheadDays)
	for _, dup := range plan.Duplicates {
		log.Printf("[warn] sync: %v", dup)
	}
	if !plan.Empty() {
		if err := s.repo.ApplyGenerated(ctx, plan.Create, plan.Update); err != nil {
			return SyncResult{}, err
		}
	}

	result := SyncResult{
		Created:   len(plan.Create),
		Updated:   len(plan.Update),
		Unchanged: plan.Unchanged,
		Skipped:   plan.Skipped,
	}
	log.Printf("[info] sync: %d sources, created=%d updated=%d unchanged=%d skipped=%d",
		len(sources), result.Created, result.Updated, result.Unchanged, result.Skipped)
	return result, nil
}

// DailyDigest renders the active reminders as Telegram-flavoured HTML.
// The second value is false when there is nothing to report.
func (s *ReminderService) DailyDigest(ctx context.Context) (string, bool, error) {
	views, _, err := s.List(ctx, ListFilter{})
	if err != nil {
		return "", false, err
	}
	now := s.Now()

	var overdue, today, upcoming []reminder.Classified
	for _, v := range views {
		switch {
		case v.Status == reminder.StatusOverdue:
			overdue = append(overdue, v)
		case v.Status == reminder.StatusDueToday:
			today = append(today, v)
		case v.DaysUntil <= s.windowDays:
			upcoming = append(upcoming, v)
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily reminders</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n", now.Format("Monday, 2 January 2006")))

	writeSection(&builder, "⚠️ <b>Overdue</b>", overdue)
	writeSection(&builder, "⏰ <b>Due today</b>", today)
	writeSection(&builder, fmt.Sprintf("📆 <b>Next %d days</b>", s.windowDays), upcoming)

	if len(overdue)+len(today)+len(upcoming) == 0 {
		builder.WriteString("\n✅ Nothing due. Enjoy the day.\n")
		return strings.TrimSpace(builder.String()), false, nil
	}
	return strings.TrimSpace(builder.String()), true, nil
}

func writeSection(builder *strings.Builder, heading string, items []reminder.Classified) {
	if len(items) == 0 {
		return
	}
	builder.WriteString("\n" + heading + "\n")
	for _, item := range items {
		builder.WriteString(FormatReminder(item))
	}
}

// FormatReminder renders one reminder line for Telegram HTML messages.
func FormatReminder(v reminder.Classified) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s", v.Style.Icon, html.EscapeString(strings.TrimSpace(v.Title))))
	if v.EntityName != "" && !strings.Contains(v.Title, v.EntityName) {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(v.EntityName)))
	}

	switch {
	case v.DaysUntil < 0:
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s · <b>%d days overdue</b>", v.ReminderDate, -v.DaysUntil))
	case v.DaysUntil == 0:
		sb.WriteString("\n   ⏰ today")
	case v.DaysUntil == 1:
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s · tomorrow", v.ReminderDate))
	default:
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s · in %d days", v.ReminderDate, v.DaysUntil))
	}
	if v.Priority == model.PriorityHigh || v.Priority == model.PriorityUrgent {
		sb.WriteString(fmt.Sprintf(" · %s", v.Priority))
	}
	if v.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(v.Description))))
	}
	sb.WriteString(fmt.Sprintf("\n   <code>%s</code>", v.ID))

	sb.WriteByte('\n')
	return sb.String()
}

func logInvalid(op string, invalid []error) {
	for _, err := range invalid {
		log.Printf("[warn] %s: %v", op, err)
	}
}
