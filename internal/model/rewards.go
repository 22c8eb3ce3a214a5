package model

import "time"

// Source tags the origin of a ledger entry.
type Source string

const (
	SourceAchievement Source = "achievement"
	SourceEvent       Source = "event"
	SourceCombo       Source = "combo"
	SourceOther       Source = "other"
)

// ValidSources are the allowed ledger sources.
var ValidSources = map[Source]bool{
	SourceAchievement: true,
	SourceEvent:       true,
	SourceCombo:       true,
	SourceOther:       true,
}

// LedgerEntry is one immutable XP change.
type LedgerEntry struct {
	ID     string    `json:"id"`
	At     time.Time `json:"ts"`
	Amount int       `json:"amount"`
	Source Source    `json:"source"`
	Note   string    `json:"note,omitempty"`
}

// RewardState is the durable reward state of a user: the monotonically
// growing unlocked set and the running XP total.
type RewardState struct {
	Unlocked []string `json:"unlocked"`
	XP       int      `json:"xp"`
}

// Has reports whether id is in the unlocked set.
func (r RewardState) Has(id string) bool {
	for _, u := range r.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// AchievementStatus is the derived, display-only status of one achievement.
type AchievementStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Percent     int    `json:"percent"`
	XP          int    `json:"xp"`
	Completed   bool   `json:"completed"`
}

// ChainStep identifies the next incomplete step of a chain.
type ChainStep struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Percent int    `json:"percent"`
}

// ChainStatus is the derived progression status of a chain.
type ChainStatus struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	Next      *ChainStep `json:"next,omitempty"`
}

// Delta is the one-shot durable transition produced by a recomputation.
// It must be applied to persisted state atomically.
type Delta struct {
	NewlyUnlocked  []string      `json:"newly_unlocked"`
	NewUnlockedSet []string      `json:"new_unlocked_set"`
	XPDelta        int           `json:"xp_delta"`
	LedgerAppend   []LedgerEntry `json:"ledger_append"`
}

// Empty reports whether applying d would change nothing.
func (d Delta) Empty() bool {
	return len(d.NewlyUnlocked) == 0 && d.XPDelta == 0 && len(d.LedgerAppend) == 0
}
