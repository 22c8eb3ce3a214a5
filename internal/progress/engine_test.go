package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/chain"
	"github.com/rcliao/progress-engine/internal/ledger"
	"github.com/rcliao/progress-engine/internal/model"
)

func weight(v float64) *float64 { return &v }

// weekSnapshot returns seven perfect, calendar-adjacent days with falling weight.
func weekSnapshot() *model.Snapshot {
	s := &model.Snapshot{Days: map[string]model.DayRecord{}}
	for i := 0; i < 7; i++ {
		key := time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		s.Days[key] = model.DayRecord{
			Date:   key,
			Pills:  model.Pills{Morning: true, Evening: true},
			Drinks: model.Drinks{Water: 8},
			Weight: weight(85 - float64(i)*0.2),
		}
	}
	return s
}

func newEngine() *Engine {
	return Default(ledger.WithClock(func() time.Time { return time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC) }))
}

func TestRecompute_RoundTrip(t *testing.T) {
	e := newEngine()
	s := weekSnapshot()
	state := model.RewardState{}

	first := e.Recompute(s, state)
	require.NotEmpty(t, first.NewlyUnlocked)
	assert.Contains(t, first.NewlyUnlocked, "first_steps_7")
	assert.NotContains(t, first.NewlyUnlocked, "perfekte_woche_7", "gated on the persisted set")
	state = ledger.Apply(state, first)
	assert.Equal(t, ledger.Total(first.LedgerAppend), state.XP)

	// Persisting the first wave opens the gate for perfekte_woche_7.
	second := e.Recompute(s, state)
	assert.Equal(t, []string{"perfekte_woche_7"}, second.NewlyUnlocked)
	assert.Equal(t, 250, second.XPDelta)
	state = ledger.Apply(state, second)

	third := e.Recompute(s, state)
	assert.True(t, third.Empty())

	report := e.Report(s, state, language.English)
	assert.Equal(t, state.Unlocked, report.UnlockedIDs)
	assert.Equal(t, report.CatalogXP+ledger.ComboBonus(len(first.NewlyUnlocked)), state.XP)
}

func TestReport_Chains(t *testing.T) {
	e := newEngine()
	report := e.Report(weekSnapshot(), model.RewardState{}, language.German)

	var water *model.ChainStatus
	for i := range report.Chains {
		if report.Chains[i].ID == "water" {
			water = &report.Chains[i]
		}
	}
	require.NotNil(t, water)
	assert.Equal(t, "Wasser", water.Title)
	assert.Equal(t, 5, water.Total)
	assert.Equal(t, 3, water.Completed)
	require.NotNil(t, water.Next)
	assert.Equal(t, "wasserdrache_streak_14", water.Next.ID)
	assert.Equal(t, 50, water.Next.Percent)
	assert.Equal(t, 1, report.Level)
}

func TestNew_CustomCatalog(t *testing.T) {
	c := achievement.MustNewCatalog(
		achievement.Definition{ID: "a", XP: 10, Progress: func(*model.Snapshot) float64 { return 100 }},
	)
	e := New(c, []chain.Definition{{ID: "x", Steps: []string{"a"}}}, ledger.NewReconciler(c))

	d := e.Recompute(nil, model.RewardState{})
	assert.Equal(t, []string{"a"}, d.NewlyUnlocked)
	assert.Equal(t, 10, d.XPDelta)
	assert.Same(t, c, e.Catalog())
}
