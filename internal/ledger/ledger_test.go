package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/model"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func always(*model.Snapshot) float64 { return 100 }

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	c, err := achievement.NewCatalog(
		achievement.Definition{ID: "a", XP: 50, Progress: always},
		achievement.Definition{ID: "b", XP: 80, Progress: always},
		achievement.Definition{ID: "c", XP: 120, Progress: always},
	)
	require.NoError(t, err)
	return NewReconciler(c, WithClock(func() time.Time { return fixedNow }))
}

func TestReconcile_ComboBonus(t *testing.T) {
	r := newTestReconciler(t)

	d := r.Reconcile(model.RewardState{XP: 10}, []string{"c", "a", "b"})

	assert.Equal(t, []string{"a", "b", "c"}, d.NewlyUnlocked, "catalog order")
	assert.Equal(t, 350, d.XPDelta)
	require.Len(t, d.LedgerAppend, 2)

	ach, combo := d.LedgerAppend[0], d.LedgerAppend[1]
	assert.Equal(t, model.SourceAchievement, ach.Source)
	assert.Equal(t, 250, ach.Amount)
	assert.Equal(t, "3 unlocks: a, b, c", ach.Note)
	assert.Equal(t, model.SourceCombo, combo.Source)
	assert.Equal(t, 100, combo.Amount)
	assert.Equal(t, fixedNow, ach.At)
	assert.NotEmpty(t, ach.ID)
	assert.NotEqual(t, ach.ID, combo.ID)

	next := Apply(model.RewardState{XP: 10}, d)
	assert.Equal(t, 360, next.XP)
	assert.Equal(t, []string{"a", "b", "c"}, next.Unlocked)
}

func TestReconcile_SingleUnlockHasNoCombo(t *testing.T) {
	r := newTestReconciler(t)
	d := r.Reconcile(model.RewardState{Unlocked: []string{"a"}}, []string{"a", "b"})

	assert.Equal(t, []string{"b"}, d.NewlyUnlocked)
	assert.Equal(t, 80, d.XPDelta)
	require.Len(t, d.LedgerAppend, 1)
	assert.Equal(t, model.SourceAchievement, d.LedgerAppend[0].Source)
	assert.Equal(t, []string{"a", "b"}, d.NewUnlockedSet)
}

func TestReconcile_Idempotent(t *testing.T) {
	r := newTestReconciler(t)
	prev := model.RewardState{}

	first := r.Reconcile(prev, []string{"a", "b"})
	state := Apply(prev, first)

	second := r.Reconcile(state, []string{"a", "b"})
	assert.True(t, second.Empty())
	assert.Empty(t, second.NewlyUnlocked)
	assert.Zero(t, second.XPDelta)
	assert.Equal(t, state.Unlocked, second.NewUnlockedSet)
	assert.Equal(t, state, Apply(state, second))
}

func TestReconcile_Monotonic(t *testing.T) {
	r := newTestReconciler(t)
	prev := model.RewardState{Unlocked: []string{"a", "c"}, XP: 170}

	d := r.Reconcile(prev, []string{"b"})
	assert.Subset(t, d.NewUnlockedSet, prev.Unlocked)
	assert.Equal(t, []string{"a", "c", "b"}, d.NewUnlockedSet)

	d = r.Reconcile(prev, nil)
	assert.ElementsMatch(t, prev.Unlocked, d.NewUnlockedSet)
}

func TestReconcile_UnknownIDContributesZero(t *testing.T) {
	r := newTestReconciler(t)
	d := r.Reconcile(model.RewardState{}, []string{"retired", "a", ""})

	assert.Equal(t, []string{"a", "retired"}, d.NewlyUnlocked)
	assert.Equal(t, 50+50, d.XPDelta)
	require.Len(t, d.LedgerAppend, 2)
	assert.Equal(t, 50, d.LedgerAppend[0].Amount)
	assert.Equal(t, 50, d.LedgerAppend[1].Amount)
}

func TestReconcile_OnlyUnknownSkipsAchievementEntry(t *testing.T) {
	r := newTestReconciler(t)
	d := r.Reconcile(model.RewardState{}, []string{"retired"})

	assert.Equal(t, []string{"retired"}, d.NewlyUnlocked)
	assert.Zero(t, d.XPDelta)
	assert.Empty(t, d.LedgerAppend)
	assert.False(t, d.Empty())
}

func TestComboBonus(t *testing.T) {
	assert.Equal(t, 0, ComboBonus(0))
	assert.Equal(t, 0, ComboBonus(1))
	assert.Equal(t, 50, ComboBonus(2))
	assert.Equal(t, 200, ComboBonus(5))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(-20))
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(99))
	assert.Equal(t, 2, Level(100))
	assert.Equal(t, 36, Level(3510))
}

func TestTotal(t *testing.T) {
	entries := []model.LedgerEntry{
		{Amount: 250, Source: model.SourceAchievement},
		{Amount: 100, Source: model.SourceCombo},
		{Amount: -10, Source: model.SourceOther},
	}
	assert.Equal(t, 340, Total(entries))
}
