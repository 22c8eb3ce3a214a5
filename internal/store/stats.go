package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalDays   int         `json:"total_days"`
	TotalPhotos int         `json:"total_photos"`
	TotalLedger int         `json:"total_ledger_entries"`
	Users       []UserStats `json:"users"`
}

// UserStats holds per-user counts.
type UserStats struct {
	User      string `json:"user"`
	Days      int    `json:"days"`
	Unlocked  int    `json:"unlocked"`
	XP        int    `json:"xp"`
	LedgerXP  int    `json:"ledger_xp"`
	FirstDay  string `json:"first_day,omitempty"`
	LatestDay string `json:"latest_day,omitempty"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM days`).Scan(&st.TotalDays)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&st.TotalPhotos)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM xp_ledger`).Scan(&st.TotalLedger)

	users, err := s.Users(ctx)
	if err != nil {
		return st, err
	}
	st.Users = users
	return st, nil
}

// Users lists every user with activity and reward counts.
func (s *SQLiteStore) Users(ctx context.Context) ([]UserStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id,
		       (SELECT COUNT(*) FROM days d WHERE d.user_id = u.id),
		       (SELECT COUNT(*) FROM unlocked a WHERE a.user_id = u.id),
		       u.xp,
		       (SELECT COALESCE(SUM(amount), 0) FROM xp_ledger l WHERE l.user_id = u.id),
		       COALESCE((SELECT MIN(date) FROM days d WHERE d.user_id = u.id), ''),
		       COALESCE((SELECT MAX(date) FROM days d WHERE d.user_id = u.id), '')
		FROM users u ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserStats
	for rows.Next() {
		var u UserStats
		if err := rows.Scan(&u.User, &u.Days, &u.Unlocked, &u.XP, &u.LedgerXP, &u.FirstDay, &u.LatestDay); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
