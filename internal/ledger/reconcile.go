// Package ledger turns newly completed achievements into an idempotent,
// append-only XP ledger transition.
package ledger

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/progress-engine/internal/achievement"
	"github.com/rcliao/progress-engine/internal/model"
)

// ComboBonusPerExtraUnlock is granted for every unlock beyond the first in a
// single recomputation.
const ComboBonusPerExtraUnlock = 50

// Reconciler diffs evaluated unlocks against the persisted unlocked set.
// It is not safe for concurrent use; callers serialize recomputations.
type Reconciler struct {
	catalog *achievement.Catalog
	now     func() time.Time
	entropy io.Reader
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClock sets the time source for ledger timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithEntropy sets the randomness used for ledger ids.
func WithEntropy(e io.Reader) Option {
	return func(r *Reconciler) { r.entropy = e }
}

// NewReconciler returns a Reconciler over the given catalog.
func NewReconciler(c *achievement.Catalog, opts ...Option) *Reconciler {
	r := &Reconciler{
		catalog: c,
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	if r.entropy == nil {
		r.entropy = ulid.Monotonic(rand.New(rand.NewSource(r.now().UnixNano())), 0)
	}
	return r
}

func (r *Reconciler) newID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), r.entropy).String()
}

// Reconcile computes the transition from prev given the evaluator's unlocked
// ids. When nothing new was unlocked the delta is empty, so running it again
// over unchanged data never grants XP twice. Base XP and the combo bonus are
// recorded as separate ledger entries.
func (r *Reconciler) Reconcile(prev model.RewardState, unlockedIDs []string) model.Delta {
	had := make(map[string]bool, len(prev.Unlocked))
	for _, id := range prev.Unlocked {
		had[id] = true
	}

	var newly []string
	for _, id := range unlockedIDs {
		if id == "" || had[id] {
			continue
		}
		had[id] = true
		newly = append(newly, id)
	}

	d := model.Delta{NewUnlockedSet: append([]string(nil), prev.Unlocked...)}
	if len(newly) == 0 {
		return d
	}

	r.sortByCatalog(newly)

	base := 0
	for _, id := range newly {
		base += r.catalog.XP(id)
	}
	combo := ComboBonus(len(newly))

	at := r.now().UTC()
	if base != 0 {
		d.LedgerAppend = append(d.LedgerAppend, model.LedgerEntry{
			ID:     r.newID(at),
			At:     at,
			Amount: base,
			Source: model.SourceAchievement,
			Note:   fmt.Sprintf("%d unlocks: %s", len(newly), strings.Join(newly, ", ")),
		})
	}
	if combo != 0 {
		d.LedgerAppend = append(d.LedgerAppend, model.LedgerEntry{
			ID:     r.newID(at),
			At:     at,
			Amount: combo,
			Source: model.SourceCombo,
			Note:   fmt.Sprintf("%d unlocks combo", len(newly)),
		})
	}

	d.NewlyUnlocked = newly
	d.NewUnlockedSet = append(d.NewUnlockedSet, newly...)
	d.XPDelta = base + combo
	return d
}

// sortByCatalog orders ids by catalog position; unknown ids keep their
// relative order after all known ones.
func (r *Reconciler) sortByCatalog(ids []string) {
	pos := func(id string) int {
		if i, ok := r.catalog.Index(id); ok {
			return i
		}
		return r.catalog.Len()
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return pos(ids[i]) < pos(ids[j])
	})
}

// ComboBonus returns the bonus for n simultaneous unlocks.
func ComboBonus(n int) int {
	if n < 2 {
		return 0
	}
	return (n - 1) * ComboBonusPerExtraUnlock
}

// Apply returns the state after applying d to prev. The unlocked set only grows.
func Apply(prev model.RewardState, d model.Delta) model.RewardState {
	next := model.RewardState{
		Unlocked: append([]string(nil), prev.Unlocked...),
		XP:       prev.XP + d.XPDelta,
	}
	for _, id := range d.NewUnlockedSet {
		if !next.Has(id) {
			next.Unlocked = append(next.Unlocked, id)
		}
	}
	return next
}
