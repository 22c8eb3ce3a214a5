package ledger

import "github.com/rcliao/progress-engine/internal/model"

// XPPerLevel is the flat XP span of one level.
const XPPerLevel = 100

// Level returns the 1-based level for a total XP.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Total sums ledger amounts. It equals the persisted XP when every XP change
// went through the ledger.
func Total(entries []model.LedgerEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Amount
	}
	return total
}
