package calc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/progress-engine/internal/model"
)

func weight(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func perfectDay(date string) model.DayRecord {
	return model.DayRecord{
		Date:   date,
		Pills:  model.Pills{Morning: true, Evening: true},
		Drinks: model.Drinks{Water: 6},
		Weight: weight(80),
	}
}

func snapshotOf(days ...model.DayRecord) *model.Snapshot {
	s := &model.Snapshot{Days: map[string]model.DayRecord{}}
	for _, d := range days {
		s.Days[d.Date] = d
	}
	return s
}

func TestDayIsPerfect(t *testing.T) {
	assert.True(t, DayIsPerfect(perfectDay("2024-01-01")))

	noWeight := perfectDay("2024-01-01")
	noWeight.Weight = nil
	assert.False(t, DayIsPerfect(noWeight))

	lowWater := perfectDay("2024-01-01")
	lowWater.Drinks.Water = 5
	assert.False(t, DayIsPerfect(lowWater))

	onePill := perfectDay("2024-01-01")
	onePill.Pills.Evening = false
	assert.False(t, DayIsPerfect(onePill))

	nanWeight := perfectDay("2024-01-01")
	nanWeight.Weight = weight(math.NaN())
	assert.False(t, DayIsPerfect(nanWeight))
}

func TestLongestPerfectStreak(t *testing.T) {
	imperfect := perfectDay("2024-01-03")
	imperfect.Pills.Morning = false

	s := snapshotOf(
		perfectDay("2024-01-01"),
		perfectDay("2024-01-02"),
		imperfect,
		perfectDay("2024-01-04"),
		perfectDay("2024-01-05"),
	)
	assert.Equal(t, 2, LongestPerfectStreak(s))
}

func TestLongestPerfectStreak_MissingDayIsGap(t *testing.T) {
	s := snapshotOf(
		perfectDay("2024-01-01"),
		perfectDay("2024-01-02"),
		perfectDay("2024-01-04"),
	)
	assert.Equal(t, 2, LongestPerfectStreak(s))
}

func TestLongestPerfectStreak_AcrossMonthBoundary(t *testing.T) {
	s := snapshotOf(
		perfectDay("2024-02-28"),
		perfectDay("2024-02-29"),
		perfectDay("2024-03-01"),
	)
	assert.Equal(t, 3, LongestPerfectStreak(s))
}

func TestLongestPerfectStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, LongestPerfectStreak(nil))
	assert.Equal(t, 0, LongestPerfectStreak(&model.Snapshot{}))
}

func waterDays(start string, units ...int) *model.Snapshot {
	s := &model.Snapshot{Days: map[string]model.DayRecord{}}
	t0, _ := model.ParseDate(start)
	for i, u := range units {
		key := t0.AddDate(0, 0, i).Format(model.DateLayout)
		s.Days[key] = model.DayRecord{Date: key, Drinks: model.Drinks{Water: u}}
	}
	return s
}

func TestLongestWaterStreakWithJoker(t *testing.T) {
	tests := []struct {
		name  string
		units []int
		want  int
	}{
		{"single miss forgiven", []int{6, 6, 6, 0, 6, 6, 6}, 7},
		{"two misses without regeneration", []int{6, 0, 6, 0, 6}, 3},
		{"all met", []int{6, 7, 8}, 3},
		{"starting miss uses joker", []int{0, 6}, 2},
		{"all missed", []int{0, 0, 0}, 1},
		{"joker regenerates after seven counted days", []int{6, 6, 6, 6, 6, 6, 6, 0, 6, 0, 6}, 11},
		{"budget exhausted resets", []int{0, 0, 6, 6}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LongestWaterStreakWithJoker(waterDays("2024-01-01", tt.units...), DefaultWaterGoal))
		})
	}
}

func TestLongestWaterStreakWithJoker_GapResets(t *testing.T) {
	s := waterDays("2024-01-01", 6, 6, 6)
	s.Days["2024-01-05"] = model.DayRecord{Date: "2024-01-05", Drinks: model.Drinks{Water: 6}}
	assert.Equal(t, 3, LongestWaterStreakWithJoker(s, DefaultWaterGoal))
}

func TestLongestWeightLossStreak(t *testing.T) {
	s := &model.Snapshot{Days: map[string]model.DayRecord{}}
	for i, w := range []float64{80, 79.5, 79.5, 79, 78.5} {
		key := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		s.Days[key] = model.DayRecord{Date: key, Weight: weight(w)}
	}
	assert.Equal(t, 3, LongestWeightLossStreak(s))
}

func TestLongestWeightLossStreak_Breaks(t *testing.T) {
	s := snapshotOf(
		model.DayRecord{Date: "2024-01-01", Weight: weight(80)},
		model.DayRecord{Date: "2024-01-02", Weight: weight(79)},
		model.DayRecord{Date: "2024-01-03"},
		model.DayRecord{Date: "2024-01-04", Weight: weight(78)},
		model.DayRecord{Date: "2024-01-06", Weight: weight(77)},
	)
	assert.Equal(t, 2, LongestWeightLossStreak(s))

	assert.Equal(t, 0, LongestWeightLossStreak(snapshotOf(model.DayRecord{Date: "2024-01-01", Weight: weight(80)})))
}

func TestCounters(t *testing.T) {
	loc := time.UTC
	early := time.Date(2024, 1, 1, 7, 30, 0, 0, loc)
	late := time.Date(2024, 1, 2, 22, 15, 0, 0, loc)

	s := snapshotOf(
		model.DayRecord{Date: "2024-01-01", Pills: model.Pills{Morning: true, Evening: true}, Drinks: model.Drinks{Water: 6, Coffee: 2, GingerGarlicTea: true}, Weight: weight(82), WeightAt: &early},
		model.DayRecord{Date: "2024-01-02", Pills: model.Pills{Morning: true}, Drinks: model.Drinks{Water: 3, Coffee: 7}, Weight: weight(81.5), WeightAt: &late},
		model.DayRecord{Date: "2024-01-03", Drinks: model.Drinks{Water: -4, Coffee: -1}},
	)

	assert.Equal(t, 3, DaysUsed(s))
	assert.Equal(t, 1, PillDays(s))
	assert.Equal(t, 1, PerfectDays(s))
	assert.Equal(t, 1, WaterGoalDays(s, DefaultWaterGoal))
	assert.Equal(t, 2, CoffeeUnderDays(s, DefaultCoffeeLimit))
	assert.Equal(t, 1, GingerTeaDays(s))
	assert.Equal(t, 1, WeighedBeforeHour(s, 8))
	assert.Equal(t, 1, TrackedAfterHour(s, 22))
	assert.InDelta(t, -0.5, WeightDelta(s), 1e-9)
}

func TestWeighedBeforeHour_UsesLocation(t *testing.T) {
	at := time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)
	s := snapshotOf(model.DayRecord{Date: "2024-01-01", Weight: weight(80), WeightAt: &at})
	assert.Equal(t, 1, WeighedBeforeHour(s, 8))

	s.Location = time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, 0, WeighedBeforeHour(s, 8))
}

func TestWeightDelta_FewerThanTwo(t *testing.T) {
	assert.Zero(t, WeightDelta(nil))
	assert.Zero(t, WeightDelta(snapshotOf(model.DayRecord{Date: "2024-01-01", Weight: weight(80)})))
}

func TestGalleryCounters(t *testing.T) {
	asOf := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &model.Snapshot{
		AsOf: asOf,
		Gallery: map[string][]model.Photo{
			"2024-01-01": {{ID: "a", TakenAt: asOf.AddDate(0, -2, 0)}},
			"2024-02-20": {{ID: "b", TakenAt: asOf.AddDate(0, 0, -10)}, {ID: "c", TakenAt: asOf.AddDate(0, 0, -9)}},
			"2024-02-21": {},
		},
	}
	assert.Equal(t, 3, TotalPhotos(s))
	assert.Equal(t, 2, PhotoDays(s))
	assert.Equal(t, 2, PhotosWithin(s, 30))

	s.AsOf = time.Time{}
	assert.Equal(t, 0, PhotosWithin(s, 30))
}

func TestCycleCounters(t *testing.T) {
	s := &model.Snapshot{CycleLogs: map[string]model.CycleLog{
		"2024-01-01": {Period: true, Flow: intp(4), Stress: intp(2), Sleep: intp(8)},
		"2024-01-02": {Period: true, Stress: intp(5), Sleep: intp(3)},
		"2024-01-03": {Stress: intp(3)},
	}}
	assert.Equal(t, 2, PeriodDays(s))
	assert.Equal(t, 2, LowStressDays(s, 3))
	assert.Equal(t, 1, LowSleepDays(s, 4))
	assert.Equal(t, 1, HighSleepDays(s, 7))
}

func TestProfileComplete(t *testing.T) {
	h := 170.0
	s := &model.Snapshot{Profile: model.Profile{Name: "Ana", DOB: "1990-05-01", Gender: "female", HeightCM: &h}}
	assert.True(t, ProfileComplete(s))

	s.Profile.Gender = "  "
	assert.False(t, ProfileComplete(s))
	assert.False(t, ProfileComplete(nil))
}

func TestSortedDays(t *testing.T) {
	s := snapshotOf(
		model.DayRecord{Date: "2024-01-10"},
		model.DayRecord{Date: "2023-12-31"},
		model.DayRecord{Date: "2024-01-02"},
	)
	assert.Equal(t, []string{"2023-12-31", "2024-01-02", "2024-01-10"}, SortedDays(s))
}
