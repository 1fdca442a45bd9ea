package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ParseClock parses an "HH:MM" wall-clock time
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

func minuteOfDay(s string) (int, error) {
	h, m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// InQuietHours reports whether now falls in the configured quiet window.
// The window test is start <= now OR now <= end, so a window that does not
// wrap midnight (e.g. 13:00-14:00) covers most of the day.
func InQuietHours(q model.QuietHours, now time.Time) bool {
	if !q.Enabled {
		return false
	}
	start, err := minuteOfDay(q.Start)
	if err != nil {
		return false
	}
	end, err := minuteOfDay(q.End)
	if err != nil {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return current >= start || current <= end
}

// cronSpec builds a standard five-field spec firing at the reminder's time
// on its weekdays. ok is false when no valid weekday is listed.
func cronSpec(hour, minute int, days []int) (string, bool) {
	seen := [7]bool{}
	var dow []string
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		dow = append(dow, strconv.Itoa(d))
	}
	if len(dow) == 0 {
		return "", false
	}
	return fmt.Sprintf("%d %d * * %s", minute, hour, strings.Join(dow, ",")), true
}

// NextTrigger returns the soonest instant strictly after now at which the
// reminder should fire. ok is false when nothing should be scheduled:
// notifications or the reminder are disabled, now is inside quiet hours,
// the time is malformed or no weekday is selected.
func NextTrigger(r model.Reminder, settings model.NotificationSettings, now time.Time) (time.Time, bool) {
	if !settings.Enabled || !r.Enabled {
		return time.Time{}, false
	}
	if InQuietHours(settings.QuietHours, now) {
		return time.Time{}, false
	}

	hour, minute, err := ParseClock(r.Time)
	if err != nil {
		return time.Time{}, false
	}
	spec, ok := cronSpec(hour, minute, r.Days)
	if !ok {
		return time.Time{}, false
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, false
	}
	next := schedule.Next(now)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}
