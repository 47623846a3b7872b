package attendance

import (
	"time"

	"github.com/campuskit/attendance-backend/internal/model"
)

// Policy fixes the time windows applied to check-ins relative to the
// scheduled class start.
type Policy struct {
	// OnTimeWindow: check-ins up to this long after start are present.
	OnTimeWindow time.Duration
	// LockDelay: check-ins are refused this long after start. Must be at
	// least OnTimeWindow for the late window to exist.
	LockDelay time.Duration
}

// DefaultPolicy mirrors the classroom convention: 20 minutes of grace,
// locked half an hour in.
var DefaultPolicy = Policy{
	OnTimeWindow: 20 * time.Minute,
	LockDelay:    30 * time.Minute,
}

// Evaluation is the outcome of classifying a check-in instant.
type Evaluation struct {
	Status model.AttendanceStatus
	Locked bool
}

// Locked reports whether the check-in window for a class scheduled at
// startTime on scheduledDay has closed. The lock only applies on the
// scheduled weekday itself; on any other day the class simply is not
// today's session. The boundary instant start+LockDelay is still open:
// locked means strictly after.
func (p Policy) Locked(now time.Time, startTime string, scheduledDay time.Weekday) bool {
	if now.Weekday() != scheduledDay {
		return false
	}
	start, err := ParseClockTime(startTime)
	if err != nil {
		return false
	}
	classStart := midnight(now).Add(start)
	return now.After(classStart.Add(p.LockDelay))
}

// Classify decides present vs late for a check-in at now against a class
// scheduled at startTime on scheduledDay, and reports whether the window
// has already locked. Early arrivals and check-ins inside the on-time
// window are present; anything later is late. When the schedule cannot be
// interpreted (bad time string) the check-in defaults to present and
// unlocked, matching the permissive behavior for sections without a
// complete schedule.
func (p Policy) Classify(now time.Time, startTime string, scheduledDay time.Weekday) Evaluation {
	if now.Weekday() != scheduledDay {
		return Evaluation{Status: model.StatusPresent}
	}
	start, err := ParseClockTime(startTime)
	if err != nil {
		return Evaluation{Status: model.StatusPresent}
	}

	classStart := midnight(now).Add(start)
	elapsed := now.Sub(classStart)

	switch {
	case elapsed <= p.OnTimeWindow:
		return Evaluation{Status: model.StatusPresent}
	case elapsed <= p.LockDelay:
		return Evaluation{Status: model.StatusLate}
	default:
		return Evaluation{Status: model.StatusLate, Locked: true}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekday maps a schedule's day-of-week string ("Monday" ... "Sunday")
// to time.Weekday. Unknown values report false.
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}
