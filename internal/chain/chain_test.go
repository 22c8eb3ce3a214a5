package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/model"
)

func ladder(steps ...string) []Definition {
	return []Definition{{ID: "l", Title: achievement.Text{DE: "Leiter", EN: "Ladder"}, Steps: steps}}
}

func TestAggregate_NextStep(t *testing.T) {
	statuses := []model.AchievementStatus{
		{ID: "a", Percent: 100, Completed: true},
		{ID: "b", Percent: 40},
		{ID: "c", Percent: 0},
	}
	got := Aggregate(ladder("a", "b", "c"), statuses, language.English)
	require.Len(t, got, 1)

	cs := got[0]
	assert.Equal(t, "Ladder", cs.Title)
	assert.Equal(t, 3, cs.Total)
	assert.Equal(t, 1, cs.Completed)
	require.NotNil(t, cs.Next)
	assert.Equal(t, "b", cs.Next.ID)
	assert.Equal(t, 1, cs.Next.Index)
	assert.Equal(t, 40, cs.Next.Percent)
}

func TestAggregate_PrefixOnly(t *testing.T) {
	statuses := []model.AchievementStatus{
		{ID: "a", Percent: 100, Completed: true},
		{ID: "b", Percent: 10},
		{ID: "c", Percent: 100, Completed: true},
	}
	cs := Aggregate(ladder("a", "b", "c"), statuses, language.English)[0]
	assert.Equal(t, 1, cs.Completed)
	assert.Equal(t, "b", cs.Next.ID)
}

func TestAggregate_AllCompleted(t *testing.T) {
	statuses := []model.AchievementStatus{
		{ID: "a", Percent: 100, Completed: true},
		{ID: "b", Percent: 100, Completed: true},
	}
	cs := Aggregate(ladder("a", "b"), statuses, language.German)[0]
	assert.Equal(t, 2, cs.Completed)
	assert.Equal(t, 2, cs.Total)
	assert.Nil(t, cs.Next)
	assert.Equal(t, "Leiter", cs.Title)
}

func TestAggregate_SkipsUnknownIDs(t *testing.T) {
	statuses := []model.AchievementStatus{
		{ID: "a", Percent: 100, Completed: true},
		{ID: "c", Percent: 20},
	}
	cs := Aggregate(ladder("a", "gone", "c"), statuses, language.English)[0]
	assert.Equal(t, 2, cs.Total)
	assert.Equal(t, 1, cs.Completed)
	require.NotNil(t, cs.Next)
	assert.Equal(t, "c", cs.Next.ID)
	assert.Equal(t, 1, cs.Next.Index)
}

func TestDefaults_ReferenceCatalog(t *testing.T) {
	cat := achievement.Default()
	for _, def := range Defaults() {
		for _, id := range def.Steps {
			_, ok := cat.Lookup(id)
			assert.True(t, ok, "chain %s references unknown %s", def.ID, id)
		}
	}
}
