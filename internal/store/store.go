// Package store persists activity snapshots and reward state in SQLite.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/progress-engine/internal/model"
)

var (
	// ErrNotFound is returned when a user has no stored data.
	ErrNotFound = errors.New("not found")

	// ErrInvalid is wrapped by validation errors on external mutations.
	ErrInvalid = errors.New("invalid input")
)

// Recomputer turns a snapshot and the persisted reward state into a delta.
type Recomputer interface {
	Recompute(s *model.Snapshot, state model.RewardState) model.Delta
}

// SnapshotParams selects what a snapshot is evaluated against.
type SnapshotParams struct {
	User     string
	AsOf     time.Time
	Location *time.Location
}

// Counters holds the chat and saved-tip counts of a user.
type Counters struct {
	ChatMessages int `json:"chat_messages"`
	SavedTips    int `json:"saved_tips"`
}

// Store defines the persistence interface.
type Store interface {
	// Day returns the record for date, or an empty record if none exists.
	Day(ctx context.Context, user, date string) (model.DayRecord, error)

	// PutDay creates or replaces a day record.
	PutDay(ctx context.Context, user string, rec model.DayRecord) error

	// CycleLog returns the log for date, or an empty log.
	CycleLog(ctx context.Context, user, date string) (model.CycleLog, error)

	// PutCycleLog creates or replaces a cycle log.
	PutCycleLog(ctx context.Context, user, date string, log model.CycleLog) error

	// AddPhoto appends a photo to the gallery of date.
	AddPhoto(ctx context.Context, user, date string, takenAt time.Time) (model.Photo, error)

	// Profile returns the user's profile.
	Profile(ctx context.Context, user string) (model.Profile, error)

	// PutProfile replaces the user's profile.
	PutProfile(ctx context.Context, user string, p model.Profile) error

	// SetCounters replaces the chat and saved-tip counts.
	SetCounters(ctx context.Context, user string, c Counters) error

	// Snapshot reads a fresh snapshot.
	Snapshot(ctx context.Context, p SnapshotParams) (*model.Snapshot, error)

	// State returns the persisted reward state.
	State(ctx context.Context, user string) (model.RewardState, error)

	// Ledger returns ledger entries, oldest first. limit <= 0 means all.
	Ledger(ctx context.Context, user string, limit int) ([]model.LedgerEntry, error)

	// Recompute evaluates and applies a delta in one transaction.
	Recompute(ctx context.Context, p SnapshotParams, r Recomputer) (model.Delta, error)

	// Close closes the store.
	Close() error
}
