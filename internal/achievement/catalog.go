package achievement

import (
	"fmt"
	"math"

	"github.com/rcliao/progress-engine/internal/calc"
	"github.com/rcliao/progress-engine/internal/model"
)

const (
	earlyBirdHour      = 8
	nightOwlHour       = 22
	recentPhotoDays    = 30
	lowStressThreshold = 3
	lowSleepThreshold  = 4
	highSleepThreshold = 7
)

// ratio returns round(100*observed/target) capped at 100.
func ratio(observed, target int) float64 {
	if target <= 0 {
		return 100
	}
	return math.Min(100, math.Round(float64(observed)/float64(target)*100))
}

// counted turns an integer metric into a progress function towards target.
func counted(target int, metric func(*model.Snapshot) int) ProgressFunc {
	return func(s *model.Snapshot) float64 {
		return ratio(metric(s), target)
	}
}

// lossOf is progress towards losing kg between the first and latest weigh-in.
// Gaining or holding weight gives no partial credit.
func lossOf(kg float64) ProgressFunc {
	return func(s *model.Snapshot) float64 {
		d := calc.WeightDelta(s)
		switch {
		case d <= -kg:
			return 100
		case d >= 0:
			return 0
		}
		return math.Min(100, math.Round(math.Abs(d)/kg*100))
	}
}

func whenTrue(pred func(*model.Snapshot) bool) ProgressFunc {
	return func(s *model.Snapshot) float64 {
		if pred(s) {
			return 100
		}
		return 0
	}
}

func waterGoalDays(s *model.Snapshot) int   { return calc.WaterGoalDays(s, calc.DefaultWaterGoal) }
func coffeeUnderDays(s *model.Snapshot) int { return calc.CoffeeUnderDays(s, calc.DefaultCoffeeLimit) }
func earlyWeighIns(s *model.Snapshot) int   { return calc.WeighedBeforeHour(s, earlyBirdHour) }
func lateTracking(s *model.Snapshot) int    { return calc.TrackedAfterHour(s, nightOwlHour) }
func recentPhotos(s *model.Snapshot) int    { return calc.PhotosWithin(s, recentPhotoDays) }
func lowStressDays(s *model.Snapshot) int   { return calc.LowStressDays(s, lowStressThreshold) }
func lowSleepDays(s *model.Snapshot) int    { return calc.LowSleepDays(s, lowSleepThreshold) }
func highSleepDays(s *model.Snapshot) int   { return calc.HighSleepDays(s, highSleepThreshold) }
func waterJokerStreak(s *model.Snapshot) int {
	return calc.LongestWaterStreakWithJoker(s, calc.DefaultWaterGoal)
}

func chatMessages(s *model.Snapshot) int {
	if s == nil {
		return 0
	}
	return max(s.ChatMessages, 0)
}

func savedTips(s *model.Snapshot) int {
	if s == nil {
		return 0
	}
	return max(s.SavedTips, 0)
}

// tier is one rung of a counted family: target n rewarded with xp.
type tier struct{ n, xp int }

func photoTotals(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		d := Definition{
			ID:          fmt.Sprintf("photos_total_%d", t.n),
			XP:          t.xp,
			Progress:    counted(t.n, calc.TotalPhotos),
			Title:       Text{DE: fmt.Sprintf("%d Fotos", t.n), EN: fmt.Sprintf("%d photos", t.n)},
			Description: Text{DE: fmt.Sprintf("Füge %d Fotos hinzu.", t.n), EN: fmt.Sprintf("Add %d photos.", t.n)},
		}
		if t.n == 1 {
			d.Title = Text{DE: "Erstes Foto", EN: "First photo"}
			d.Description = Text{DE: "Füge ein Foto hinzu.", EN: "Add one photo."}
		}
		defs = append(defs, d)
	}
	return defs
}

func photoDayTiers(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		d := Definition{
			ID:          fmt.Sprintf("photo_days_%d", t.n),
			XP:          t.xp,
			Progress:    counted(t.n, calc.PhotoDays),
			Title:       Text{DE: fmt.Sprintf("%d Foto-Tage", t.n), EN: fmt.Sprintf("%d photo days", t.n)},
			Description: Text{DE: fmt.Sprintf("An %d Tagen Fotos hinzugefügt.", t.n), EN: fmt.Sprintf("Add photos on %d days.", t.n)},
		}
		if t.n == 1 {
			d.Title = Text{DE: "Foto-Tag", EN: "Photo day"}
			d.Description = Text{DE: "An 1 Tag Fotos hinzugefügt.", EN: "Add photos on 1 day."}
		}
		defs = append(defs, d)
	}
	return defs
}

func recentPhotoTiers(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		de, en := fmt.Sprintf("%d Fotos", t.n), fmt.Sprintf("%d photos", t.n)
		if t.n == 1 {
			de, en = "1 Foto", "1 photo"
		}
		defs = append(defs, Definition{
			ID:          fmt.Sprintf("photos_month_%d", t.n),
			XP:          t.xp,
			Progress:    counted(t.n, recentPhotos),
			Title:       Text{DE: fmt.Sprintf("Monat Fotos %d", t.n), EN: fmt.Sprintf("Month photos %d", t.n)},
			Description: Text{DE: de + " in den letzten 30 Tagen.", EN: en + " in the last 30 days."},
		})
	}
	return defs
}

func periodTiers(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		d := Definition{
			ID:          fmt.Sprintf("period_track_%d", t.n),
			XP:          t.xp,
			Progress:    counted(t.n, calc.PeriodDays),
			Title:       Text{DE: fmt.Sprintf("Periode %dx", t.n), EN: fmt.Sprintf("Period %dx", t.n)},
			Description: Text{DE: fmt.Sprintf("Periode an %d Tagen markiert.", t.n), EN: fmt.Sprintf("Mark period on %d days.", t.n)},
		}
		if t.n == 1 {
			d.Title = Text{DE: "Periode getrackt 1x", EN: "Period tracked 1x"}
			d.Description = Text{DE: "Periode einmal markiert.", EN: "Mark period once."}
		}
		defs = append(defs, d)
	}
	return defs
}

// wellnessTiers builds a cycle-log family such as low_stress_N.
func wellnessTiers(prefix string, title Text, rule string, metric func(*model.Snapshot) int, tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		de := fmt.Sprintf("%d Tage mit %s (%s).", t.n, lowerDE(title.DE), rule)
		en := fmt.Sprintf("%d days %s (%s).", t.n, lowerEN(title.EN), rule)
		if t.n == 1 {
			de = fmt.Sprintf("1 Tag mit %s (%s).", lowerDE(title.DE), rule)
			en = fmt.Sprintf("1 day %s (%s).", lowerEN(title.EN), rule)
		}
		defs = append(defs, Definition{
			ID:          fmt.Sprintf("%s_%d", prefix, t.n),
			XP:          t.xp,
			Progress:    counted(t.n, metric),
			Title:       Text{DE: fmt.Sprintf("%s %d", title.DE, t.n), EN: fmt.Sprintf("%s %d", title.EN, t.n)},
			Description: Text{DE: de, EN: en},
		})
	}
	return defs
}

// German nouns stay capitalized; only the adjective is lowered.
func lowerDE(s string) string {
	switch s {
	case "Wenig Stress":
		return "wenig Stress"
	case "Wenig Schlaf":
		return "wenig Schlaf"
	case "Viel Schlaf":
		return "viel Schlaf"
	}
	return s
}

func lowerEN(s string) string {
	switch s {
	case "Low stress":
		return "low stress"
	case "Low sleep":
		return "low sleep"
	case "High sleep":
		return "high sleep"
	}
	return s
}

func weightLossStreakTiers(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		defs = append(defs, Definition{
			ID:          fmt.Sprintf("weight_loss_streak_%d", t.n),
			XP:          t.xp,
			Progress:    counted(t.n, calc.LongestWeightLossStreak),
			Title:       Text{DE: fmt.Sprintf("Abnahme-Kette %d", t.n), EN: fmt.Sprintf("Loss streak %d", t.n)},
			Description: Text{DE: fmt.Sprintf("%d Tage in Folge abgenommen.", t.n), EN: fmt.Sprintf("Lose weight %d days in a row.", t.n)},
		})
	}
	return defs
}

func waterStreakTiers(tiers ...tier) []Definition {
	defs := make([]Definition, 0, len(tiers))
	for _, t := range tiers {
		defs = append(defs, Definition{
			ID:       fmt.Sprintf("wasserdrache_streak_%d", t.n),
			XP:       t.xp,
			Progress: counted(t.n, waterJokerStreak),
			Title: Text{
				DE: fmt.Sprintf("Wasserdrache: Kette %d (+Joker)", t.n),
				EN: fmt.Sprintf("Water dragon: streak %d (+joker)", t.n),
			},
			Description: Text{
				DE: fmt.Sprintf("Wasserziel %d Tage in Folge (1 Joker / 7 Tage).", t.n),
				EN: fmt.Sprintf("Water goal %d days in a row (1 joker / 7 days).", t.n),
			},
		})
	}
	return defs
}

func baseDefinitions() []Definition {
	return []Definition{
		{ID: "first_steps_7", XP: 50, Progress: counted(7, calc.DaysUsed),
			Title:       Text{DE: "Erste Schritte", EN: "First steps"},
			Description: Text{DE: "7 Tage App verwendet.", EN: "Use the app for 7 days."}},
		{ID: "pillen_profi_7", XP: 100, Progress: counted(7, calc.PillDays),
			Title:       Text{DE: "Pillen-Profi", EN: "Pill pro"},
			Description: Text{DE: "7 Tage alle Tabletten.", EN: "All pills for 7 days."}},
		{ID: "wasserdrache_5", XP: 75, Progress: counted(5, waterGoalDays),
			Title:       Text{DE: "Wasserdrache", EN: "Water dragon"},
			Description: Text{DE: "5 Tage Wasserziel erreicht.", EN: "Hit water goal on 5 days."}},
		{ID: "kaffee_kontrolle_7", XP: 80, Progress: counted(7, coffeeUnderDays),
			Title:       Text{DE: "Kaffee-Kontrolle", EN: "Coffee control"},
			Description: Text{DE: "7 Tage unter 6 Kaffees.", EN: "Under 6 coffees for 7 days."}},
		{ID: "perfekte_woche_7", XP: 250, Progress: counted(7, calc.PerfectDays),
			Requires:    []string{"first_steps_7", "pillen_profi_7", "wasserdrache_5", "kaffee_kontrolle_7"},
			Title:       Text{DE: "Perfekte Woche", EN: "Perfect week"},
			Description: Text{DE: "7 Tage alle Ziele.", EN: "7 perfect days."}},
		{ID: "tee_liebhaber_20", XP: 120, Progress: counted(20, calc.GingerTeaDays),
			Title:       Text{DE: "Tee-Liebhaber", EN: "Tea lover"},
			Description: Text{DE: "20x Ingwer-Knoblauch-Tee.", EN: "20x ginger-garlic tea."}},
		{ID: "fruehaufsteher_30", XP: 200, Progress: counted(30, earlyWeighIns),
			Title:       Text{DE: "Frühaufsteher", EN: "Early bird"},
			Description: Text{DE: "30x vor 8:00 gewogen.", EN: "30x weighed before 8:00."}},
		{ID: "nachteule_50", XP: 150, Progress: counted(50, lateTracking),
			Title:       Text{DE: "Nachteule", EN: "Night owl"},
			Description: Text{DE: "50x nach 22:00 getrackt.", EN: "50x tracked after 22:00."}},
		{ID: "chat_enthusiast_100", XP: 200, Progress: counted(100, chatMessages),
			Title:       Text{DE: "Chat-Enthusiast", EN: "Chat enthusiast"},
			Description: Text{DE: "100 Nachrichten mit Gugi.", EN: "100 messages with Gugi."}},
		{ID: "wissenssammler_50", XP: 250, Progress: counted(50, savedTips),
			Title:       Text{DE: "Wissenssammler", EN: "Knowledge collector"},
			Description: Text{DE: "50 Tipps gespeichert.", EN: "Save 50 tips."}},

		{ID: "pillen_legende_100", XP: 1000, Progress: counted(100, calc.PillDays),
			Requires:    []string{"pillen_profi_7"},
			Title:       Text{DE: "Pillen-Legende", EN: "Pill legend"},
			Description: Text{DE: "100 Tage alle Tabletten.", EN: "100 days all pills."}},
		{ID: "jahres_champion_365", XP: 2500, Progress: counted(365, calc.PillDays),
			Requires:    []string{"pillen_legende_100"},
			Title:       Text{DE: "Jahres-Champion", EN: "Year champion"},
			Description: Text{DE: "365 Tage Tabletten.", EN: "365 days pills."}},
		{ID: "perfekter_monat_30", XP: 750, Progress: counted(30, calc.PerfectDays),
			Requires:    []string{"perfekte_woche_7"},
			Title:       Text{DE: "Perfekter Monat", EN: "Perfect month"},
			Description: Text{DE: "30 Tage alle Ziele.", EN: "30 perfect days."}},
		{ID: "streak_master_50", XP: 1200, Progress: counted(50, calc.LongestPerfectStreak),
			Requires:    []string{"perfekter_monat_30"},
			Title:       Text{DE: "Streak-Master", EN: "Streak master"},
			Description: Text{DE: "50 Tage perfekt (Streak).", EN: "50-day perfect streak."}},
		{ID: "diamant_status_100", XP: 3000, Progress: counted(100, calc.PerfectDays),
			Requires:    []string{"streak_master_50"},
			Title:       Text{DE: "Diamant-Status", EN: "Diamond status"},
			Description: Text{DE: "100 Tage perfekt.", EN: "100 perfect days."}},
		{ID: "bestaendigkeits_koenig_200", XP: 4000, Progress: counted(200, calc.DaysUsed),
			Title:       Text{DE: "Beständigkeits-König", EN: "Consistency king"},
			Description: Text{DE: "200 Tage App-Nutzung.", EN: "200 days of app usage."}},
		{ID: "erste_erfolge_2kg", XP: 400, Progress: lossOf(2),
			Requires:    []string{"perfekte_woche_7"},
			Title:       Text{DE: "Erste Erfolge", EN: "First success"},
			Description: Text{DE: "2kg abgenommen.", EN: "Lose 2kg."}},
		{ID: "grosser_erfolg_5kg", XP: 800, Progress: lossOf(5),
			Requires:    []string{"erste_erfolge_2kg"},
			Title:       Text{DE: "Großer Erfolg", EN: "Big success"},
			Description: Text{DE: "5kg abgenommen.", EN: "Lose 5kg."}},
		{ID: "transformation_10kg", XP: 2000, Progress: lossOf(10),
			Requires:    []string{"grosser_erfolg_5kg"},
			Title:       Text{DE: "Transformation", EN: "Transformation"},
			Description: Text{DE: "10kg abgenommen.", EN: "Lose 10kg."}},
		{ID: "mega_transformation_20kg", XP: 5000, Progress: lossOf(20),
			Requires:    []string{"transformation_10kg"},
			Title:       Text{DE: "Mega-Transformation", EN: "Mega transformation"},
			Description: Text{DE: "20kg abgenommen.", EN: "Lose 20kg."}},

		{ID: "profile_complete", XP: 80, Progress: whenTrue(calc.ProfileComplete),
			Title:       Text{DE: "Profil komplett", EN: "Profile complete"},
			Description: Text{DE: "Name, Geburtstag, Geschlecht, Größe gesetzt.", EN: "Set name, DOB, gender, height."}},
	}
}

// DefaultDefinitions returns the built-in achievement list in display order.
func DefaultDefinitions() []Definition {
	defs := baseDefinitions()
	defs = append(defs, photoTotals(tier{1, 30}, tier{5, 60}, tier{10, 90}, tier{25, 160}, tier{50, 250}, tier{100, 500})...)
	defs = append(defs, photoDayTiers(tier{1, 40}, tier{5, 80}, tier{10, 150}, tier{25, 300}, tier{50, 600})...)
	defs = append(defs, recentPhotoTiers(tier{1, 30}, tier{3, 50}, tier{5, 80}, tier{10, 120})...)
	defs = append(defs, periodTiers(tier{1, 40}, tier{5, 100}, tier{10, 180}, tier{20, 300}, tier{50, 700})...)

	wellness := []tier{{1, 40}, {10, 120}, {25, 260}, {50, 520}, {100, 1100}}
	defs = append(defs, wellnessTiers("low_stress", Text{DE: "Wenig Stress", EN: "Low stress"}, "≤3", lowStressDays, wellness...)...)
	defs = append(defs, wellnessTiers("low_sleep", Text{DE: "Wenig Schlaf", EN: "Low sleep"}, "≤4", lowSleepDays, wellness...)...)
	defs = append(defs, wellnessTiers("high_sleep", Text{DE: "Viel Schlaf", EN: "High sleep"}, "≥7", highSleepDays, wellness...)...)

	defs = append(defs, weightLossStreakTiers(tier{2, 120}, tier{5, 250}, tier{10, 500}, tier{20, 900}, tier{30, 1400})...)
	defs = append(defs, waterStreakTiers(tier{3, 120}, tier{7, 300}, tier{14, 650}, tier{30, 1500})...)
	return defs
}

var defaultCatalog = MustNewCatalog(DefaultDefinitions()...)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
