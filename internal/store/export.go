package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

// Export is a full backup of one user.
type Export struct {
	User     string              `json:"user"`
	Snapshot *model.Snapshot     `json:"snapshot"`
	State    model.RewardState   `json:"state"`
	Ledger   []model.LedgerEntry `json:"ledger"`
}

// ExportAll returns everything stored for the user.
func (s *SQLiteStore) ExportAll(ctx context.Context, user string) (*Export, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, user).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("export user %q: %w", user, ErrNotFound)
	}
	snap, err := s.Snapshot(ctx, SnapshotParams{User: user})
	if err != nil {
		return nil, err
	}
	state, err := s.State(ctx, user)
	if err != nil {
		return nil, err
	}
	entries, err := s.Ledger(ctx, user, 0)
	if err != nil {
		return nil, err
	}
	return &Export{User: user, Snapshot: snap, State: state, Ledger: entries}, nil
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	Days     int `json:"days"`
	Cycle    int `json:"cycle_logs"`
	Photos   int `json:"photos"`
	Unlocked int `json:"unlocked"`
	Ledger   int `json:"ledger_entries"`
	XP       int `json:"xp_added"`
}

// Import restores an export into user. Day records and cycle logs replace
// existing ones for the same date, photos and ledger entries are skipped when
// their id already exists, and unlocked ids are merged. XP grows by the
// amount of each newly inserted ledger entry, so the stored total stays the
// sum of the ledger.
func (s *SQLiteStore) Import(ctx context.Context, user string, e *Export) (*ImportResult, error) {
	if e == nil {
		return &ImportResult{}, nil
	}
	res := &ImportResult{}

	if snap := e.Snapshot; snap != nil {
		dates := make([]string, 0, len(snap.Days))
		for k := range snap.Days {
			dates = append(dates, k)
		}
		sort.Strings(dates)
		for _, date := range dates {
			rec := snap.Days[date]
			rec.Date = date
			if err := s.PutDay(ctx, user, rec); err != nil {
				return res, fmt.Errorf("import day %s: %w", date, err)
			}
			res.Days++
		}

		for date, l := range snap.CycleLogs {
			if err := s.PutCycleLog(ctx, user, date, l); err != nil {
				return res, fmt.Errorf("import cycle log %s: %w", date, err)
			}
			res.Cycle++
		}

		n, err := s.importPhotos(ctx, user, snap.Gallery)
		res.Photos = n
		if err != nil {
			return res, err
		}

		if err := s.PutProfile(ctx, user, snap.Profile); err != nil {
			return res, fmt.Errorf("import profile: %w", err)
		}
		if err := s.SetCounters(ctx, user, Counters{ChatMessages: snap.ChatMessages, SavedTips: snap.SavedTips}); err != nil {
			return res, fmt.Errorf("import counters: %w", err)
		}
	}

	if err := s.importRewards(ctx, user, e, res); err != nil {
		return res, err
	}
	return res, nil
}

func (s *SQLiteStore) importPhotos(ctx context.Context, user string, gallery map[string][]model.Photo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return 0, err
	}
	n := 0
	for date, photos := range gallery {
		if err := validDate(date); err != nil {
			return n, err
		}
		for _, p := range photos {
			takenAt := p.TakenAt
			if takenAt.IsZero() {
				takenAt = time.Now()
			}
			id := p.ID
			if id == "" {
				id = s.newID(takenAt)
			}
			r, err := s.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO photos (id, user_id, date, taken_at) VALUES (?, ?, ?, ?)`,
				id, user, date, takenAt.UTC().Format(timeLayout))
			if err != nil {
				return n, fmt.Errorf("import photo: %w", err)
			}
			if c, _ := r.RowsAffected(); c > 0 {
				n++
			}
		}
	}
	return n, nil
}

func (s *SQLiteStore) importRewards(ctx context.Context, user string, e *Export, res *ImportResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, user); err != nil {
		return err
	}

	now := time.Now().UTC().Format(timeLayout)
	for _, id := range e.State.Unlocked {
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO unlocked (user_id, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
			user, id, now)
		if err != nil {
			return fmt.Errorf("import unlocked: %w", err)
		}
		if c, _ := r.RowsAffected(); c > 0 {
			res.Unlocked++
		}
	}

	for _, le := range e.Ledger {
		if !model.ValidSources[le.Source] {
			return fmt.Errorf("%w: ledger source %q", ErrInvalid, le.Source)
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO xp_ledger (id, user_id, ts, amount, source, note) VALUES (?, ?, ?, ?, ?, ?)`,
			le.ID, user, le.At.UTC().Format(timeLayout), le.Amount, string(le.Source), nullString(le.Note))
		if err != nil {
			return fmt.Errorf("import ledger entry: %w", err)
		}
		if c, _ := r.RowsAffected(); c > 0 {
			res.Ledger++
			res.XP += le.Amount
		}
	}

	if res.XP != 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET xp = xp + ? WHERE id = ?`, res.XP, user); err != nil {
			return fmt.Errorf("update xp: %w", err)
		}
	}
	return tx.Commit()
}
