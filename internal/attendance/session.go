// Package attendance holds the pure rules of the attendance domain:
// deterministic session identity and the check-in time window.
package attendance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SessionID derives the attendance-session identifier for one section on
// one calendar date. It is a name-based UUID (v5, SHA-1) over the nil
// namespace, so independent requests for the same section/day always agree
// on the identifier without a read-then-write step. The derivation is part
// of the stored-data contract; changing it would orphan existing records.
func SessionID(sectionID int, date time.Time) uuid.UUID {
	key := "attendance-" + strconv.Itoa(sectionID) + "-" + date.Format("2006-01-02")
	return uuid.NewSHA1(uuid.Nil, []byte(key))
}

// ParseClockTime parses a schedule time of day in "HH:MM" or "HH:MM:SS"
// form into a duration since midnight.
func ParseClockTime(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		sec = 0
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
