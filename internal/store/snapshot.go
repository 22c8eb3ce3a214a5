package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

// Snapshot reads a fresh snapshot of everything recorded for the user.
func (s *SQLiteStore) Snapshot(ctx context.Context, p SnapshotParams) (*model.Snapshot, error) {
	return loadSnapshot(ctx, s.db, p)
}

func loadSnapshot(ctx context.Context, q querier, p SnapshotParams) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Days:      map[string]model.DayRecord{},
		CycleLogs: map[string]model.CycleLog{},
		Gallery:   map[string][]model.Photo{},
		AsOf:      p.AsOf,
		Location:  p.Location,
	}

	rows, err := q.QueryContext(ctx, daySelect+` WHERE user_id = ? ORDER BY date`, p.User)
	if err != nil {
		return nil, fmt.Errorf("load days: %w", err)
	}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan day: %w", err)
		}
		snap.Days[d.Date] = d
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, `SELECT date, data FROM cycle_logs WHERE user_id = ?`, p.User)
	if err != nil {
		return nil, fmt.Errorf("load cycle logs: %w", err)
	}
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cycle log: %w", err)
		}
		var l model.CycleLog
		// A corrupt row reads as an empty log rather than failing the snapshot.
		if json.Unmarshal([]byte(data), &l) != nil {
			l = model.CycleLog{}
		}
		snap.CycleLogs[date] = l
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx,
		`SELECT id, date, taken_at FROM photos WHERE user_id = ? ORDER BY date, taken_at`, p.User)
	if err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}
	for rows.Next() {
		var ph model.Photo
		var date, takenAt string
		if err := rows.Scan(&ph.ID, &date, &takenAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		ph.TakenAt, _ = time.Parse(timeLayout, takenAt)
		snap.Gallery[date] = append(snap.Gallery[date], ph)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	profile, counters, err := loadProfile(ctx, q, p.User)
	if err != nil {
		return nil, err
	}
	snap.Profile = profile
	snap.ChatMessages = counters.ChatMessages
	snap.SavedTips = counters.SavedTips

	return snap, nil
}

// State returns the persisted reward state.
func (s *SQLiteStore) State(ctx context.Context, user string) (model.RewardState, error) {
	return loadState(ctx, s.db, user)
}

func loadState(ctx context.Context, q querier, user string) (model.RewardState, error) {
	var st model.RewardState

	err := q.QueryRowContext(ctx, `SELECT COALESCE((SELECT xp FROM users WHERE id = ?), 0)`, user).Scan(&st.XP)
	if err != nil {
		return st, fmt.Errorf("load xp: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT achievement_id FROM unlocked WHERE user_id = ? ORDER BY rowid`, user)
	if err != nil {
		return st, fmt.Errorf("load unlocked: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return st, err
		}
		st.Unlocked = append(st.Unlocked, id)
	}
	return st, rows.Err()
}

// Ledger returns ledger entries oldest first. A positive limit keeps only the
// most recent entries.
func (s *SQLiteStore) Ledger(ctx context.Context, user string, limit int) ([]model.LedgerEntry, error) {
	query := `SELECT id, ts, amount, source, note FROM xp_ledger WHERE user_id = ? ORDER BY ts, id`
	args := []any{user}
	if limit > 0 {
		query = `SELECT * FROM (
			SELECT id, ts, amount, source, note FROM xp_ledger WHERE user_id = ?
			ORDER BY ts DESC, id DESC LIMIT ?
		) ORDER BY ts, id`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		var ts, source string
		var note sql.NullString
		if err := rows.Scan(&e.ID, &ts, &e.Amount, &source, &note); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(timeLayout, ts)
		e.Source = model.Source(source)
		e.Note = note.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recompute loads the snapshot and reward state, asks r for a delta and
// applies it, all inside one immediate transaction so no other writer can
// observe a partially updated unlocked set.
func (s *SQLiteStore) Recompute(ctx context.Context, p SnapshotParams, r Recomputer) (model.Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Delta{}, err
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, p.User); err != nil {
		return model.Delta{}, err
	}
	snap, err := loadSnapshot(ctx, tx, p)
	if err != nil {
		return model.Delta{}, err
	}
	state, err := loadState(ctx, tx, p.User)
	if err != nil {
		return model.Delta{}, err
	}

	delta := r.Recompute(snap, state)
	if delta.Empty() {
		return delta, nil
	}
	if err := applyDelta(ctx, tx, p.User, delta); err != nil {
		return model.Delta{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Delta{}, err
	}
	return delta, nil
}

// Apply applies a delta computed elsewhere in one transaction.
func (s *SQLiteStore) Apply(ctx context.Context, user string, d model.Delta) error {
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
	if err := applyDelta(ctx, tx, user, d); err != nil {
		return err
	}
	return tx.Commit()
}

// applyDelta only ever adds to the unlocked set; ids already present are ignored.
func applyDelta(ctx context.Context, q querier, user string, d model.Delta) error {
	now := time.Now().UTC().Format(timeLayout)
	ids := d.NewUnlockedSet
	if len(ids) == 0 {
		ids = d.NewlyUnlocked
	}
	for _, id := range ids {
		_, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO unlocked (user_id, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
			user, id, now)
		if err != nil {
			return fmt.Errorf("insert unlocked: %w", err)
		}
	}

	for _, e := range d.LedgerAppend {
		if !model.ValidSources[e.Source] {
			return fmt.Errorf("%w: ledger source %q", ErrInvalid, e.Source)
		}
		_, err := q.ExecContext(ctx,
			`INSERT INTO xp_ledger (id, user_id, ts, amount, source, note) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, user, e.At.UTC().Format(timeLayout), e.Amount, string(e.Source), nullString(e.Note))
		if err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
	}

	if d.XPDelta != 0 {
		_, err := q.ExecContext(ctx, `UPDATE users SET xp = xp + ? WHERE id = ?`, d.XPDelta, user)
		if err != nil {
			return fmt.Errorf("update xp: %w", err)
		}
	}
	return nil
}
