package attendance

import (
	"testing"
	"time"

	"github.com/campuskit/attendance-backend/internal/model"
)

// 2026-03-09 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func TestPolicyLocked(t *testing.T) {
	policy := Policy{OnTimeWindow: 20 * time.Minute, LockDelay: 30 * time.Minute}

	tests := []struct {
		name   string
		now    time.Time
		start  string
		day    time.Weekday
		locked bool
	}{
		{"well before start", monday(7, 30), "08:00", time.Monday, false},
		{"within grace", monday(8, 20), "08:00", time.Monday, false},
		{"at lock boundary", monday(8, 30), "08:00", time.Monday, false},
		{"past lock", monday(8, 45), "08:00", time.Monday, true},
		{"long past lock", monday(11, 0), "08:00", time.Monday, true},
		{"wrong weekday never locks", monday(11, 0), "08:00", time.Tuesday, false},
		{"seconds form", monday(8, 45), "08:00:00", time.Monday, true},
		{"unparseable start", monday(11, 0), "soon", time.Monday, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Locked(tc.now, tc.start, tc.day); got != tc.locked {
				t.Errorf("Locked(%v, %q, %v) = %v; want %v", tc.now, tc.start, tc.day, got, tc.locked)
			}
		})
	}
}

func TestPolicyClassify(t *testing.T) {
	policy := Policy{OnTimeWindow: 5 * time.Minute, LockDelay: 30 * time.Minute}

	tests := []struct {
		name   string
		now    time.Time
		status model.AttendanceStatus
		locked bool
	}{
		{"early arrival", monday(7, 55), model.StatusPresent, false},
		{"exactly on time", monday(8, 0), model.StatusPresent, false},
		{"inside on-time window", monday(8, 5), model.StatusPresent, false},
		{"past cutoff is late", monday(8, 10), model.StatusLate, false},
		{"late until lock", monday(8, 30), model.StatusLate, false},
		{"after lock", monday(8, 31), model.StatusLate, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Classify(tc.now, "08:00", time.Monday)
			if got.Status != tc.status || got.Locked != tc.locked {
				t.Errorf("Classify(%v) = %+v; want status=%s locked=%v", tc.now, got, tc.status, tc.locked)
			}
		})
	}
}

func TestPolicyClassifyOtherWeekday(t *testing.T) {
	got := DefaultPolicy.Classify(monday(9, 0), "08:00", time.Friday)
	if got.Status != model.StatusPresent || got.Locked {
		t.Errorf("check-in on a non-scheduled day should be present/unlocked, got %+v", got)
	}
}

func TestParseWeekday(t *testing.T) {
	if d, ok := ParseWeekday("Wednesday"); !ok || d != time.Wednesday {
		t.Errorf("ParseWeekday(Wednesday) = %v, %v", d, ok)
	}
	if _, ok := ParseWeekday("Someday"); ok {
		t.Error("ParseWeekday accepted an unknown day")
	}
}
