// Package achievement holds the achievement catalog and evaluates it against
// an activity snapshot and the persisted unlocked set.
package achievement

import (
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/model"
)

// ProgressFunc computes raw progress in [0,100] from a snapshot.
type ProgressFunc func(*model.Snapshot) float64

// Definition is one static achievement.
type Definition struct {
	ID          string
	XP          int
	Progress    ProgressFunc
	Requires    []string
	Title       Text
	Description Text
}

// Catalog is an ordered, immutable set of definitions.
type Catalog struct {
	defs []Definition
	byID map[string]int
}

// NewCatalog builds a catalog. IDs must be unique, XP positive and every
// definition must have a progress function.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make([]Definition, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("definition %d: empty id", i)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id %q", d.ID)
		}
		if d.XP <= 0 {
			return nil, fmt.Errorf("achievement %q: xp must be positive, got %d", d.ID, d.XP)
		}
		if d.Progress == nil {
			return nil, fmt.Errorf("achievement %q: missing progress function", d.ID)
		}
		c.defs[i] = d
		c.byID[d.ID] = i
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on error.
func MustNewCatalog(defs ...Definition) *Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }

// Definitions returns the definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Lookup returns the definition with the given id.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Index returns the catalog position of id.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// XP returns the reward of id, or 0 for unknown ids.
func (c *Catalog) XP(id string) int {
	if d, ok := c.Lookup(id); ok {
		return d.XP
	}
	return 0
}

// Result is the output of one evaluation.
type Result struct {
	Statuses    []model.AchievementStatus `json:"statuses"`
	UnlockedIDs []string                  `json:"unlocked_ids"`
	XP          int                       `json:"xp"`
}

// Status returns the status of id, if present.
func (r Result) Status(id string) (model.AchievementStatus, bool) {
	for _, st := range r.Statuses {
		if st.ID == id {
			return st, true
		}
	}
	return model.AchievementStatus{}, false
}

// Evaluate applies the catalog to a snapshot. A definition whose
// prerequisites are not all in unlocked reports 0% regardless of its raw
// progress; it only becomes visible once the prerequisites are actually
// unlocked. Statuses keep catalog order.
func (c *Catalog) Evaluate(s *model.Snapshot, unlocked []string, lang language.Tag) Result {
	prev := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		prev[id] = true
	}

	res := Result{Statuses: make([]model.AchievementStatus, 0, len(c.defs))}
	for _, d := range c.defs {
		depsOK := true
		for _, req := range d.Requires {
			if !prev[req] {
				depsOK = false
				break
			}
		}

		percent := 0
		if depsOK {
			percent = normalize(d.Progress(s))
		}

		res.Statuses = append(res.Statuses, model.AchievementStatus{
			ID:          d.ID,
			Title:       d.Title.In(lang),
			Description: d.Description.In(lang),
			Percent:     percent,
			XP:          d.XP,
			Completed:   depsOK && percent >= 100,
		})
	}

	seen := make(map[string]bool, len(unlocked)+len(c.defs))
	for _, id := range unlocked {
		if !seen[id] {
			seen[id] = true
			res.UnlockedIDs = append(res.UnlockedIDs, id)
		}
	}
	for _, st := range res.Statuses {
		if st.Completed && !seen[st.ID] {
			seen[st.ID] = true
			res.UnlockedIDs = append(res.UnlockedIDs, st.ID)
		}
	}
	for _, id := range res.UnlockedIDs {
		res.XP += c.XP(id)
	}
	return res
}

// normalize rounds raw progress and clamps it to [0,100]. NaN reads as 0.
func normalize(raw float64) int {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	r := math.Round(raw)
	if r >= 100 {
		return 100
	}
	return int(r)
}
