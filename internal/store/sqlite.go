package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/progress-engine/internal/model"
)

// timeLayout is fixed width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand

	// mu serializes writers in this process; _txlock=immediate covers
	// other processes sharing the file.
	mu sync.Mutex
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT,
		dob           TEXT,
		gender        TEXT,
		height_cm     REAL,
		chat_messages INTEGER NOT NULL DEFAULT 0,
		saved_tips    INTEGER NOT NULL DEFAULT 0,
		xp            INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS days (
		user_id      TEXT NOT NULL REFERENCES users(id),
		date         TEXT NOT NULL,
		pill_morning INTEGER NOT NULL DEFAULT 0,
		pill_evening INTEGER NOT NULL DEFAULT 0,
		water        INTEGER NOT NULL DEFAULT 0,
		coffee       INTEGER NOT NULL DEFAULT 0,
		slim_coffee  INTEGER NOT NULL DEFAULT 0,
		ginger_tea   INTEGER NOT NULL DEFAULT 0,
		water_cure   INTEGER NOT NULL DEFAULT 0,
		sport        INTEGER NOT NULL DEFAULT 0,
		weight       REAL,
		weight_at    TEXT,
		PRIMARY KEY (user_id, date)
	);

	CREATE TABLE IF NOT EXISTS cycle_logs (
		user_id TEXT NOT NULL REFERENCES users(id),
		date    TEXT NOT NULL,
		data    TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	);

	CREATE TABLE IF NOT EXISTS photos (
		id       TEXT PRIMARY KEY,
		user_id  TEXT NOT NULL REFERENCES users(id),
		date     TEXT NOT NULL,
		taken_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_photos_user_date ON photos(user_id, date);

	CREATE TABLE IF NOT EXISTS unlocked (
		user_id        TEXT NOT NULL REFERENCES users(id),
		achievement_id TEXT NOT NULL,
		unlocked_at    TEXT NOT NULL,
		PRIMARY KEY (user_id, achievement_id)
	);

	CREATE TABLE IF NOT EXISTS xp_ledger (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		ts      TEXT NOT NULL,
		amount  INTEGER NOT NULL,
		source  TEXT NOT NULL,
		note    TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_user_ts ON xp_ledger(user_id, ts);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ensureUser creates the user row if missing.
func ensureUser(ctx context.Context, q querier, user string) error {
	if user == "" {
		return fmt.Errorf("%w: empty user", ErrInvalid)
	}
	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`,
		user, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func validDate(date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalid, date)
	}
	return nil
}

func (s *SQLiteStore) Day(ctx context.Context, user, date string) (model.DayRecord, error) {
	if err := validDate(date); err != nil {
		return model.DayRecord{}, err
	}
	rows, err := s.db.QueryContext(ctx, daySelect+` WHERE user_id = ? AND date = ?`, user, date)
	if err != nil {
		return model.DayRecord{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return model.DayRecord{Date: date}, rows.Err()
	}
	return scanDay(rows)
}

func (s *SQLiteStore) PutDay(ctx context.Context, user string, rec model.DayRecord) error {
	if err := validDate(rec.Date); err != nil {
		return err
	}
	if rec.Drinks.Water < 0 || rec.Drinks.Coffee < 0 {
		return fmt.Errorf("%w: drink counters must be non-negative", ErrInvalid)
	}
	if rec.Weight != nil && (math.IsNaN(*rec.Weight) || *rec.Weight <= 0) {
		return fmt.Errorf("%w: weight must be positive", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return err
	}

	var weightAt *string
	if rec.WeightAt != nil {
		v := rec.WeightAt.UTC().Format(timeLayout)
		weightAt = &v
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO days (user_id, date, pill_morning, pill_evening, water, coffee,
		                   slim_coffee, ginger_tea, water_cure, sport, weight, weight_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   pill_morning = excluded.pill_morning, pill_evening = excluded.pill_evening,
		   water = excluded.water, coffee = excluded.coffee,
		   slim_coffee = excluded.slim_coffee, ginger_tea = excluded.ginger_tea,
		   water_cure = excluded.water_cure, sport = excluded.sport,
		   weight = excluded.weight, weight_at = excluded.weight_at`,
		user, rec.Date, rec.Pills.Morning, rec.Pills.Evening, rec.Drinks.Water, rec.Drinks.Coffee,
		rec.Drinks.SlimCoffee, rec.Drinks.GingerGarlicTea, rec.Drinks.WaterCure, rec.Drinks.Sport,
		rec.Weight, weightAt)
	if err != nil {
		return fmt.Errorf("upsert day: %w", err)
	}
	return nil
}

func validScale(name string, v *int) error {
	if v != nil && (*v < 1 || *v > 10) {
		return fmt.Errorf("%w: %s must be between 1 and 10, got %d", ErrInvalid, name, *v)
	}
	return nil
}

func validateCycleLog(l model.CycleLog) error {
	scales := []struct {
		name string
		v    *int
	}{
		{"mood", l.Mood}, {"energy", l.Energy}, {"pain", l.Pain}, {"sleep", l.Sleep},
		{"stress", l.Stress}, {"appetite", l.Appetite}, {"cravings", l.Cravings},
		{"focus", l.Focus}, {"libido", l.Libido}, {"flow", l.Flow},
	}
	for _, sc := range scales {
		if err := validScale(sc.name, sc.v); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CycleLog(ctx context.Context, user, date string) (model.CycleLog, error) {
	if err := validDate(date); err != nil {
		return model.CycleLog{}, err
	}
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM cycle_logs WHERE user_id = ? AND date = ?`, user, date).Scan(&data)
	if err == sql.ErrNoRows {
		return model.CycleLog{}, nil
	}
	if err != nil {
		return model.CycleLog{}, err
	}
	var l model.CycleLog
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return model.CycleLog{}, fmt.Errorf("decode cycle log %s: %w", date, err)
	}
	return l, nil
}

func (s *SQLiteStore) PutCycleLog(ctx context.Context, user, date string, l model.CycleLog) error {
	if err := validDate(date); err != nil {
		return err
	}
	if err := validateCycleLog(l); err != nil {
		return err
	}
	if !l.Period {
		l.Flow = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return err
	}
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode cycle log: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cycle_logs (user_id, date, data) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET data = excluded.data`,
		user, date, string(b))
	if err != nil {
		return fmt.Errorf("upsert cycle log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddPhoto(ctx context.Context, user, date string, takenAt time.Time) (model.Photo, error) {
	if err := validDate(date); err != nil {
		return model.Photo{}, err
	}
	if takenAt.IsZero() {
		takenAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return model.Photo{}, err
	}
	p := model.Photo{ID: s.newID(takenAt), TakenAt: takenAt.UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO photos (id, user_id, date, taken_at) VALUES (?, ?, ?, ?)`,
		p.ID, user, date, p.TakenAt.Format(timeLayout))
	if err != nil {
		return model.Photo{}, fmt.Errorf("insert photo: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) Profile(ctx context.Context, user string) (model.Profile, error) {
	p, _, err := loadProfile(ctx, s.db, user)
	return p, err
}

func (s *SQLiteStore) PutProfile(ctx context.Context, user string, p model.Profile) error {
	if p.Gender != "" && !model.ValidGenders[p.Gender] {
		return fmt.Errorf("%w: gender %q", ErrInvalid, p.Gender)
	}
	if p.HeightCM != nil && *p.HeightCM <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, dob = ?, gender = ?, height_cm = ? WHERE id = ?`,
		nullString(p.Name), nullString(p.DOB), nullString(p.Gender), p.HeightCM, user)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetCounters(ctx context.Context, user string, c Counters) error {
	if c.ChatMessages < 0 || c.SavedTips < 0 {
		return fmt.Errorf("%w: counters must be non-negative", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureUser(ctx, s.db, user); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET chat_messages = ?, saved_tips = ? WHERE id = ?`,
		c.ChatMessages, c.SavedTips, user)
	if err != nil {
		return fmt.Errorf("update counters: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type scanner interface {
	Scan(dest ...any) error
}

const daySelect = `SELECT date, pill_morning, pill_evening, water, coffee,
	slim_coffee, ginger_tea, water_cure, sport, weight, weight_at FROM days`

func scanDay(row scanner) (model.DayRecord, error) {
	var d model.DayRecord
	var weight sql.NullFloat64
	var weightAt sql.NullString

	err := row.Scan(
		&d.Date, &d.Pills.Morning, &d.Pills.Evening, &d.Drinks.Water, &d.Drinks.Coffee,
		&d.Drinks.SlimCoffee, &d.Drinks.GingerGarlicTea, &d.Drinks.WaterCure, &d.Drinks.Sport,
		&weight, &weightAt,
	)
	if err != nil {
		return d, err
	}

	if weight.Valid {
		w := weight.Float64
		d.Weight = &w
	}
	if weightAt.Valid {
		if t, err := time.Parse(timeLayout, weightAt.String); err == nil {
			d.WeightAt = &t
		}
	}
	return d, nil
}

// loadProfile returns the profile and counters of user. A missing user reads
// as empty.
func loadProfile(ctx context.Context, q querier, user string) (model.Profile, Counters, error) {
	var p model.Profile
	var c Counters
	var name, dob, gender sql.NullString
	var height sql.NullFloat64

	err := q.QueryRowContext(ctx,
		`SELECT name, dob, gender, height_cm, chat_messages, saved_tips FROM users WHERE id = ?`, user).
		Scan(&name, &dob, &gender, &height, &c.ChatMessages, &c.SavedTips)
	if err == sql.ErrNoRows {
		return p, c, nil
	}
	if err != nil {
		return p, c, fmt.Errorf("load profile: %w", err)
	}

	p.Name, p.DOB, p.Gender = name.String, dob.String, gender.String
	if height.Valid {
		h := height.Float64
		p.HeightCM = &h
	}
	return p, c, nil
}
