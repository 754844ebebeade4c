package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"household-hub/internal/config"
)

// DefaultJobTimeout bounds a single scheduled run.
const DefaultJobTimeout = 2 * time.Minute

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron:    cron.New(cron.WithLocation(loc), cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		timeout: DefaultJobTimeout,
	}
}

// ScheduleDaily registers a named job at the given HH:MM time string.
func (s *SchedulerService) ScheduleDaily(name, at string, job func(ctx context.Context) error) (cron.EntryID, error) {
	spec, err := buildDailySpec(at)
	if err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, s.wrap(name, job))
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", name, err)
	}
	log.Printf("[info] scheduled %s daily at %s", name, at)
	return id, nil
}

func (s *SchedulerService) wrap(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		started := time.Now()
		if err := job(ctx); err != nil {
			log.Printf("[warn] job %s: %v", name, err)
			return
		}
		log.Printf("[info] job %s done in %s", name, time.Since(started).Round(time.Millisecond))
	}
}

// Entries reports how many jobs are registered.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(at string) (string, error) {
	clock, err := config.ParseClock(at)
	if err != nil {
		return "", err
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", clock.Minute, clock.Hour), nil
}
