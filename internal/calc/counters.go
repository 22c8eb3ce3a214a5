package calc

import (
	"sort"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

// countDays returns how many day records satisfy pred.
func countDays(s *model.Snapshot, pred func(model.DayRecord) bool) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, d := range s.Days {
		if pred(d) {
			n++
		}
	}
	return n
}

// countLogs returns how many cycle logs satisfy pred.
func countLogs(s *model.Snapshot, pred func(model.CycleLog) bool) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, l := range s.CycleLogs {
		if pred(l) {
			n++
		}
	}
	return n
}

// DaysUsed returns the number of distinct days with a record.
func DaysUsed(s *model.Snapshot) int {
	if s == nil {
		return 0
	}
	return len(s.Days)
}

// PillDays returns the number of days with both pills taken.
func PillDays(s *model.Snapshot) int {
	return countDays(s, model.DayRecord.BothPills)
}

// PerfectDays returns the number of perfect days, adjacent or not.
func PerfectDays(s *model.Snapshot) int {
	return countDays(s, DayIsPerfect)
}

// WaterGoalDays returns the number of days meeting the water goal.
func WaterGoalDays(s *model.Snapshot, goal int) int {
	return countDays(s, func(d model.DayRecord) bool { return d.WaterUnits() >= goal })
}

// CoffeeUnderDays returns the number of days with fewer coffees than limit.
func CoffeeUnderDays(s *model.Snapshot, limit int) int {
	return countDays(s, func(d model.DayRecord) bool { return d.CoffeeUnits() < limit })
}

// GingerTeaDays returns the number of days with ginger-garlic tea.
func GingerTeaDays(s *model.Snapshot) int {
	return countDays(s, func(d model.DayRecord) bool { return d.Drinks.GingerGarlicTea })
}

// WeighedBeforeHour counts weigh-ins captured before hour in the snapshot's location.
func WeighedBeforeHour(s *model.Snapshot, hour int) int {
	loc := s.Loc()
	return countDays(s, func(d model.DayRecord) bool {
		return d.HasWeight() && d.WeightAt != nil && d.WeightAt.In(loc).Hour() < hour
	})
}

// TrackedAfterHour counts weight captures at or after hour in the snapshot's location.
func TrackedAfterHour(s *model.Snapshot, hour int) int {
	loc := s.Loc()
	return countDays(s, func(d model.DayRecord) bool {
		return d.WeightAt != nil && d.WeightAt.In(loc).Hour() >= hour
	})
}

// WeightDelta returns the most recent recorded weight minus the first one.
// Negative means weight was lost. Fewer than two weigh-ins yield zero.
func WeightDelta(s *model.Snapshot) float64 {
	if s == nil {
		return 0
	}
	keys := make([]string, 0, len(s.Days))
	for k, d := range s.Days {
		if d.HasWeight() {
			keys = append(keys, k)
		}
	}
	if len(keys) < 2 {
		return 0
	}
	sort.Strings(keys)
	return *s.Days[keys[len(keys)-1]].Weight - *s.Days[keys[0]].Weight
}

// TotalPhotos returns the number of photos across all days.
func TotalPhotos(s *model.Snapshot) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, photos := range s.Gallery {
		n += len(photos)
	}
	return n
}

// PhotoDays returns the number of distinct days with at least one photo.
func PhotoDays(s *model.Snapshot) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, photos := range s.Gallery {
		if len(photos) > 0 {
			n++
		}
	}
	return n
}

// PhotosWithin counts photos taken within the given number of days before
// the snapshot's AsOf time. A snapshot without AsOf has no window.
func PhotosWithin(s *model.Snapshot, days int) int {
	if s == nil || s.AsOf.IsZero() {
		return 0
	}
	since := s.AsOf.Add(-time.Duration(days) * 24 * time.Hour)
	n := 0
	for _, photos := range s.Gallery {
		for _, p := range photos {
			if !p.TakenAt.IsZero() && !p.TakenAt.Before(since) {
				n++
			}
		}
	}
	return n
}

// PeriodDays returns the number of cycle logs marking a period day.
func PeriodDays(s *model.Snapshot) int {
	return countLogs(s, func(l model.CycleLog) bool { return l.Period })
}

// LowStressDays counts logs with stress at or below threshold.
func LowStressDays(s *model.Snapshot, threshold int) int {
	return countLogs(s, func(l model.CycleLog) bool { return l.Stress != nil && *l.Stress <= threshold })
}

// LowSleepDays counts logs with sleep at or below threshold.
func LowSleepDays(s *model.Snapshot, threshold int) int {
	return countLogs(s, func(l model.CycleLog) bool { return l.Sleep != nil && *l.Sleep <= threshold })
}

// HighSleepDays counts logs with sleep at or above threshold.
func HighSleepDays(s *model.Snapshot, threshold int) int {
	return countLogs(s, func(l model.CycleLog) bool { return l.Sleep != nil && *l.Sleep >= threshold })
}

// ProfileComplete reports whether all required profile fields are set.
func ProfileComplete(s *model.Snapshot) bool {
	return s != nil && s.Profile.Complete()
}
