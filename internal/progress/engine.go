// Package progress wires the achievement evaluator to the chain aggregator
// and the XP ledger reconciler. The engine holds no mutable state; every call
// works on the snapshot and reward state it is given.
package progress

import (
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/chain"
	"github.com/rcliao/progress-engine/internal/ledger"
	"github.com/rcliao/progress-engine/internal/model"
)

// Engine evaluates snapshots against a catalog.
type Engine struct {
	catalog    *achievement.Catalog
	chains     []chain.Definition
	reconciler *ledger.Reconciler
}

// New returns an engine over the given catalog and chains.
func New(c *achievement.Catalog, chains []chain.Definition, r *ledger.Reconciler) *Engine {
	return &Engine{catalog: c, chains: chains, reconciler: r}
}

// Default returns an engine over the built-in catalog and chains.
func Default(opts ...ledger.Option) *Engine {
	c := achievement.Default()
	return New(c, chain.Defaults(), ledger.NewReconciler(c, opts...))
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *achievement.Catalog { return e.catalog }

// Report is the display view of a snapshot.
type Report struct {
	Achievements []model.AchievementStatus `json:"achievements"`
	Chains       []model.ChainStatus       `json:"chains"`
	UnlockedIDs  []string                  `json:"unlocked_ids"`

	// CatalogXP is the XP implied by UnlockedIDs. It cross-checks the
	// persisted total and is not the ledger's source of truth.
	CatalogXP int `json:"catalog_xp"`
	XP        int `json:"xp"`
	Level     int `json:"level"`
}

// Report evaluates the snapshot for display without changing state.
func (e *Engine) Report(s *model.Snapshot, state model.RewardState, lang language.Tag) Report {
	res := e.catalog.Evaluate(s, state.Unlocked, lang)
	return Report{
		Achievements: res.Statuses,
		Chains:       chain.Aggregate(e.chains, res.Statuses, lang),
		UnlockedIDs:  res.UnlockedIDs,
		CatalogXP:    res.XP,
		XP:           state.XP,
		Level:        ledger.Level(state.XP),
	}
}

// Recompute evaluates the snapshot and returns the durable transition to
// apply to state. The caller must apply it atomically.
func (e *Engine) Recompute(s *model.Snapshot, state model.RewardState) model.Delta {
	res := e.catalog.Evaluate(s, state.Unlocked, achievement.DefaultLanguage())
	return e.reconciler.Reconcile(state, res.UnlockedIDs)
}
