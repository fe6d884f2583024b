package models

import (
	"errors"
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/apperrors"
)

func TestNewWeeklySchedule(t *testing.T) {
	tests := []struct {
		name     string
		weekdays []time.Weekday
		wantDays []time.Weekday
		wantErr  bool
	}{
		{
			name:     "single day",
			weekdays: []time.Weekday{time.Monday},
			wantDays: []time.Weekday{time.Monday},
		},
		{
			name:     "duplicates collapsed",
			weekdays: []time.Weekday{time.Monday, time.Monday, time.Friday},
			wantDays: []time.Weekday{time.Monday, time.Friday},
		},
		{
			name:    "empty set rejected",
			wantErr: true,
		},
		{
			name:     "out of range weekday rejected",
			weekdays: []time.Weekday{time.Weekday(9)},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWeeklySchedule(tt.weekdays, HintAnytime)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, apperrors.ErrScheduleConfig) {
					t.Errorf("error = %v, want a ScheduleConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWeeklySchedule failed: %v", err)
			}
			if got.Kind != ScheduleWeekly {
				t.Errorf("Kind = %q, want weekly", got.Kind)
			}
			if len(got.Weekdays) != len(tt.wantDays) {
				t.Fatalf("Weekdays = %v, want %v", got.Weekdays, tt.wantDays)
			}
			for i, wd := range tt.wantDays {
				if got.Weekdays[i] != wd {
					t.Errorf("Weekdays[%d] = %v, want %v", i, got.Weekdays[i], wd)
				}
			}
		})
	}
}

func TestNewDailySchedule_DefaultsHint(t *testing.T) {
	s := NewDailySchedule("")
	if s.TimeHint != HintAnytime {
		t.Errorf("TimeHint = %q, want anytime", s.TimeHint)
	}
	if s.Kind != ScheduleDaily {
		t.Errorf("Kind = %q, want daily", s.Kind)
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		wantErr  bool
	}{
		{name: "daily", schedule: Schedule{Kind: ScheduleDaily}},
		{name: "weekly with days", schedule: Schedule{Kind: ScheduleWeekly, Weekdays: []time.Weekday{time.Monday}}},
		{name: "weekly empty set", schedule: Schedule{Kind: ScheduleWeekly}, wantErr: true},
		{name: "unknown kind", schedule: Schedule{Kind: "monthly"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrScheduleConfig) {
				t.Errorf("error = %v, want a ScheduleConfigError", err)
			}
		})
	}
}
