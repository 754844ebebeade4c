package service

import (
	"context"
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "06:00", want: "0 0 6 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "7:5", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestScheduleDaily(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	noop := func(context.Context) error { return nil }
	if _, err := s.ScheduleDaily("sync", "06:00", noop); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleDaily("digest", "8 o'clock", noop); err == nil {
		t.Fatal("expected an error for a malformed time")
	}
	if s.Entries() != 1 {
		t.Fatalf("entries = %d", s.Entries())
	}
}
