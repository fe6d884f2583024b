package cli

import (
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{name: "short names", input: "mon,wed,fri", want: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{name: "full names mixed case", input: "Monday,SUNDAY", want: []time.Weekday{time.Monday, time.Sunday}},
		{name: "numeric", input: "0,6", want: []time.Weekday{time.Sunday, time.Saturday}},
		{name: "whitespace tolerated", input: " tue , thu ", want: []time.Weekday{time.Tuesday, time.Thursday}},
		{name: "unknown name", input: "mon,someday", wantErr: true},
		{name: "out of range number", input: "7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("parseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatSchedule(t *testing.T) {
	weekly, err := models.NewWeeklySchedule([]time.Weekday{time.Monday, time.Wednesday}, models.HintAnytime)
	if err != nil {
		t.Fatalf("NewWeeklySchedule failed: %v", err)
	}

	tests := []struct {
		name     string
		schedule models.Schedule
		want     string
	}{
		{name: "daily anytime", schedule: models.NewDailySchedule(models.HintAnytime), want: "daily"},
		{name: "daily morning", schedule: models.NewDailySchedule(models.HintMorning), want: "daily (morning)"},
		{name: "weekly", schedule: weekly, want: "weekly on Mon,Wed"},
		{
			name:     "specific time",
			schedule: models.Schedule{Kind: models.ScheduleDaily, TimeHint: models.HintSpecific, At: "07:30"},
			want:     "daily at 07:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSchedule(tt.schedule); got != tt.want {
				t.Errorf("formatSchedule = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHabitAddBuildSchedule(t *testing.T) {
	tests := []struct {
		name    string
		cmd     HabitAddCmd
		wantErr bool
	}{
		{name: "daily anytime", cmd: HabitAddCmd{Daily: true, Hint: "anytime"}},
		{name: "weekly", cmd: HabitAddCmd{Days: "mon,fri", Hint: "morning"}},
		{name: "specific with valid time", cmd: HabitAddCmd{Daily: true, Hint: "specific", At: "07:30"}},
		{name: "specific missing time", cmd: HabitAddCmd{Daily: true, Hint: "specific"}, wantErr: true},
		{name: "specific with bad time", cmd: HabitAddCmd{Daily: true, Hint: "specific", At: "7:3pm"}, wantErr: true},
		{name: "unknown hint", cmd: HabitAddCmd{Daily: true, Hint: "whenever"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := tt.cmd.buildSchedule()
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildSchedule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.cmd.At != "" && sched.At != tt.cmd.At {
				t.Errorf("At = %q, want %q", sched.At, tt.cmd.At)
			}
		})
	}
}

func TestResolveDay(t *testing.T) {
	const today = "2024-01-10"

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "empty means today", arg: "", want: today},
		{name: "literal today", arg: "today", want: today},
		{name: "explicit day", arg: "2024-01-05", want: "2024-01-05"},
		{name: "malformed", arg: "Jan 5", wantErr: true},
		{name: "wrong layout", arg: "05-01-2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDay(tt.arg, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveDay(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveDay(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}
