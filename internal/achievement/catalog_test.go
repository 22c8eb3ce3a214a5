package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/model"
)

func TestDefaultCatalog_Consistent(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 60)

	for i, d := range c.Definitions() {
		assert.NotEmpty(t, d.Title.DE, d.ID)
		assert.NotEmpty(t, d.Title.EN, d.ID)
		for _, req := range d.Requires {
			j, ok := c.Index(req)
			require.True(t, ok, "%s requires unknown %s", d.ID, req)
			assert.Less(t, j, i, "%s must come after its prerequisite %s", d.ID, req)
		}
	}
}

func TestDefaultCatalog_EmptySnapshot(t *testing.T) {
	res := Default().Evaluate(&model.Snapshot{}, nil, language.German)
	for _, st := range res.Statuses {
		assert.False(t, st.Completed, st.ID)
		assert.GreaterOrEqual(t, st.Percent, 0)
		assert.LessOrEqual(t, st.Percent, 100)
	}
	assert.Empty(t, res.UnlockedIDs)
	assert.Zero(t, res.XP)
}

func weightOf(v float64) *float64 { return &v }

func weightSnapshot(first, last float64) *model.Snapshot {
	return &model.Snapshot{Days: map[string]model.DayRecord{
		"2024-01-01": {Date: "2024-01-01", Weight: weightOf(first)},
		"2024-02-01": {Date: "2024-02-01", Weight: weightOf(last)},
	}}
}

func TestLossOf(t *testing.T) {
	p := lossOf(2)
	assert.Equal(t, 100.0, p(weightSnapshot(80, 77.5)))
	assert.Equal(t, 100.0, p(weightSnapshot(80, 78)))
	assert.Equal(t, 50.0, p(weightSnapshot(80, 79)))
	assert.Equal(t, 0.0, p(weightSnapshot(80, 80)))
	assert.Equal(t, 0.0, p(weightSnapshot(80, 83)))
}

func TestDefaultCatalog_WeightLadderIsGated(t *testing.T) {
	s := weightSnapshot(90, 70)
	res := Default().Evaluate(s, nil, language.English)

	st, ok := res.Status("erste_erfolge_2kg")
	require.True(t, ok)
	assert.Equal(t, 0, st.Percent)

	res = Default().Evaluate(s, []string{"perfekte_woche_7"}, language.English)
	st, _ = res.Status("erste_erfolge_2kg")
	assert.True(t, st.Completed)
	st, _ = res.Status("grosser_erfolg_5kg")
	assert.Equal(t, 0, st.Percent, "second rung waits for the first to be persisted")
}

func TestDefaultCatalog_FirstWeek(t *testing.T) {
	s := &model.Snapshot{Days: map[string]model.DayRecord{}}
	for i := 0; i < 7; i++ {
		key := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		s.Days[key] = model.DayRecord{
			Date:   key,
			Pills:  model.Pills{Morning: true, Evening: true},
			Drinks: model.Drinks{Water: 6, Coffee: 1},
			Weight: weightOf(80 - float64(i)*0.1),
		}
	}

	res := Default().Evaluate(s, nil, language.English)
	for _, id := range []string{"first_steps_7", "pillen_profi_7", "wasserdrache_5", "kaffee_kontrolle_7", "wasserdrache_streak_7", "weight_loss_streak_5"} {
		st, ok := res.Status(id)
		require.True(t, ok, id)
		assert.True(t, st.Completed, id)
	}

	st, _ := res.Status("perfekte_woche_7")
	assert.Equal(t, 0, st.Percent)

	res = Default().Evaluate(s, res.UnlockedIDs, language.English)
	st, _ = res.Status("perfekte_woche_7")
	assert.True(t, st.Completed)
	assert.Equal(t, "Perfect week", st.Title)
}

func TestDefaultCatalog_CountersFromSnapshot(t *testing.T) {
	h := 165.0
	s := &model.Snapshot{
		Profile:      model.Profile{Name: "Ana", DOB: "1990-01-01", Gender: "female", HeightCM: &h},
		ChatMessages: 50,
		SavedTips:    -3,
	}
	res := Default().Evaluate(s, nil, language.English)

	st, _ := res.Status("profile_complete")
	assert.True(t, st.Completed)
	st, _ = res.Status("chat_enthusiast_100")
	assert.Equal(t, 50, st.Percent)
	st, _ = res.Status("wissenssammler_50")
	assert.Equal(t, 0, st.Percent)
}
