// Package calc computes streaks and aggregate counts over an activity snapshot.
// Every function is pure and total: absent or malformed data reads as zero.
package calc

import (
	"sort"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

const (
	// DefaultWaterGoal is the daily water target in units.
	DefaultWaterGoal = 6

	// DefaultCoffeeLimit is the exclusive daily coffee limit.
	DefaultCoffeeLimit = 6

	// jokerWindow is the number of counted streak days that regenerate one joker.
	jokerWindow = 7
)

// dayKey is a day key with its parsed date. ok is false for malformed keys,
// which are never adjacent to anything.
type dayKey struct {
	key string
	t   time.Time
	ok  bool
}

// follows reports whether d is exactly one calendar day after prev.
func (d dayKey) follows(prev dayKey) bool {
	return d.ok && prev.ok && prev.t.AddDate(0, 0, 1).Equal(d.t)
}

// sortedDays returns the snapshot's day keys in chronological order.
func sortedDays(s *model.Snapshot) []dayKey {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Days))
	for k := range s.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dayKey, len(keys))
	for i, k := range keys {
		t, err := model.ParseDate(k)
		out[i] = dayKey{key: k, t: t, ok: err == nil}
	}
	return out
}

// SortedDays returns the snapshot's day keys in chronological order.
func SortedDays(s *model.Snapshot) []string {
	days := sortedDays(s)
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.key
	}
	return keys
}

// DayIsPerfect reports whether both pills were taken, the water goal was met
// and a weight was recorded.
func DayIsPerfect(d model.DayRecord) bool {
	return d.BothPills() && d.WaterUnits() >= DefaultWaterGoal && d.HasWeight()
}

// LongestPerfectStreak returns the longest run of calendar-adjacent perfect days.
// A missing day is a gap even when its neighbours are perfect.
func LongestPerfectStreak(s *model.Snapshot) int {
	days := sortedDays(s)
	best, cur := 0, 0
	for i, d := range days {
		if !DayIsPerfect(s.Days[d.key]) {
			cur = 0
			continue
		}
		if i > 0 && d.follows(days[i-1]) && DayIsPerfect(s.Days[days[i-1].key]) {
			cur++
		} else {
			cur = 1
		}
		best = max(best, cur)
	}
	return best
}

// LongestWaterStreakWithJoker returns the longest consecutive-day water streak
// where a missed goal may be forgiven by spending a joker. The joker budget
// starts at one and grows by one for every seven days counted in the current
// streak. A calendar gap, or a miss with no joker left, resets the streak and
// the budget.
func LongestWaterStreakWithJoker(s *model.Snapshot, dailyGoal int) int {
	days := sortedDays(s)
	best, cur, budget, window := 0, 0, 1, 0
	for i, d := range days {
		if i > 0 && !d.follows(days[i-1]) {
			cur, budget, window = 0, 1, 0
		}

		met := s.Days[d.key].WaterUnits() >= dailyGoal
		switch {
		case met:
			cur++
			window++
		case budget > 0:
			budget--
			cur++
			window++
		default:
			cur, budget, window = 0, 1, 0
		}

		if window == jokerWindow {
			budget++
			window = 0
		}
		best = max(best, cur)
	}
	return best
}

// LongestWeightLossStreak returns the number of days in the longest run of
// calendar-adjacent days whose weight strictly decreased day over day.
// A missing weight, a gap or a non-decrease breaks the run.
func LongestWeightLossStreak(s *model.Snapshot) int {
	days := sortedDays(s)
	best, run := 0, 0
	for i := 1; i < len(days); i++ {
		prev, cur := days[i-1], days[i]
		if !cur.follows(prev) {
			run = 0
			continue
		}
		p, d := s.Days[prev.key], s.Days[cur.key]
		if p.HasWeight() && d.HasWeight() && *d.Weight < *p.Weight {
			run++
			best = max(best, run+1)
		} else {
			run = 0
		}
	}
	return best
}
