// Package chain groups achievements into ordered progression ladders.
// Chain status is display-only: it never unlocks anything or grants XP.
package chain

import (
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/model"
)

// Definition is an ordered ladder of achievement ids.
type Definition struct {
	ID    string
	Title achievement.Text
	Steps []string
}

// Aggregate derives the status of every chain from evaluated achievement
// statuses. Steps that name no known achievement are skipped and excluded
// from the chain's total. Completed counts the longest completed prefix, so
// a completed step after an incomplete one does not count.
func Aggregate(defs []Definition, statuses []model.AchievementStatus, lang language.Tag) []model.ChainStatus {
	byID := make(map[string]model.AchievementStatus, len(statuses))
	for _, st := range statuses {
		byID[st.ID] = st
	}

	out := make([]model.ChainStatus, 0, len(defs))
	for _, def := range defs {
		cs := model.ChainStatus{ID: def.ID, Title: def.Title.In(lang)}
		for _, id := range def.Steps {
			st, ok := byID[id]
			if !ok {
				continue
			}
			if cs.Next == nil && st.Completed {
				cs.Completed++
			} else if cs.Next == nil {
				cs.Next = &model.ChainStep{
					Index:   cs.Total,
					ID:      st.ID,
					Title:   st.Title,
					Percent: st.Percent,
				}
			}
			cs.Total++
		}
		out = append(out, cs)
	}
	return out
}

// Defaults returns the built-in chains.
func Defaults() []Definition {
	return []Definition{
		{ID: "perfect", Title: achievement.Text{DE: "Perfekte Tage", EN: "Perfect days"},
			Steps: []string{"perfekte_woche_7", "perfekter_monat_30", "streak_master_50", "diamant_status_100"}},
		{ID: "pills", Title: achievement.Text{DE: "Pillen-Meister", EN: "Pill mastery"},
			Steps: []string{"pillen_profi_7", "pillen_legende_100", "jahres_champion_365"}},
		{ID: "weight_loss", Title: achievement.Text{DE: "Gewichtsziele", EN: "Weight goals"},
			Steps: []string{"erste_erfolge_2kg", "grosser_erfolg_5kg", "transformation_10kg", "mega_transformation_20kg"}},
		{ID: "weight_loss_streak", Title: achievement.Text{DE: "Gewichtsverlust (Kette)", EN: "Weight loss (streak)"},
			Steps: []string{"weight_loss_streak_2", "weight_loss_streak_5", "weight_loss_streak_10", "weight_loss_streak_20", "weight_loss_streak_30"}},
		{ID: "usage", Title: achievement.Text{DE: "Dranbleiben", EN: "Consistency"},
			Steps: []string{"first_steps_7", "bestaendigkeits_koenig_200"}},
		{ID: "water", Title: achievement.Text{DE: "Wasser", EN: "Water"},
			Steps: []string{"wasserdrache_5", "wasserdrache_streak_3", "wasserdrache_streak_7", "wasserdrache_streak_14", "wasserdrache_streak_30"}},
		{ID: "coffee", Title: achievement.Text{DE: "Kaffee-Kontrolle", EN: "Coffee control"},
			Steps: []string{"kaffee_kontrolle_7"}},
		{ID: "ginger", Title: achievement.Text{DE: "Ingwer-Knoblauch-Tee", EN: "Ginger-garlic tea"},
			Steps: []string{"tee_liebhaber_20"}},
		{ID: "early", Title: achievement.Text{DE: "Frühaufsteher", EN: "Early bird"},
			Steps: []string{"fruehaufsteher_30"}},
		{ID: "night", Title: achievement.Text{DE: "Nachteule", EN: "Night owl"},
			Steps: []string{"nachteule_50"}},
		{ID: "photos", Title: achievement.Text{DE: "Fotos", EN: "Photos"},
			Steps: []string{"photos_total_1", "photos_total_5", "photos_total_10", "photos_total_25", "photos_total_50", "photos_total_100",
				"photo_days_5", "photo_days_10", "photo_days_25", "photo_days_50"}},
		{ID: "period", Title: achievement.Text{DE: "Periode", EN: "Period"},
			Steps: []string{"period_track_1", "period_track_5", "period_track_10", "period_track_20", "period_track_50"}},
		{ID: "profile", Title: achievement.Text{DE: "Profil", EN: "Profile"},
			Steps: []string{"profile_complete"}},
	}
}
