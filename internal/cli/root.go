// Package cli implements the progress CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/config"
	"github.com/rcliao/progress-engine/internal/ledger"
	"github.com/rcliao/progress-engine/internal/model"
	"github.com/rcliao/progress-engine/internal/progress"
	"github.com/rcliao/progress-engine/internal/store"
)

var (
	dbPath       string
	userFlag     string
	langFlag     string
	tzFlag       string
	logLevelFlag string
	formatFlag   string

	cfg config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "progress",
	Short: "Streaks, achievements and XP for daily health tracking",
	Long: "Track pills, drinks, weight, cycle logs and photos per day. Every change " +
		"re-evaluates the achievement catalog and appends earned XP to a ledger. SQLite-backed, single binary.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	f := RootCmd.PersistentFlags()
	f.StringVarP(&dbPath, "db", "d", "", "Database path (default: $PROGRESS_DB or ~/.progress-engine/progress.db)")
	f.StringVarP(&userFlag, "user", "u", "", "User key (default: $PROGRESS_USER or \"default\")")
	f.StringVar(&langFlag, "lang", "", "Display language: de, en, pl (default: $PROGRESS_LANG or de)")
	f.StringVar(&tzFlag, "tz", "", "IANA timezone for hour-of-day rules (default: $PROGRESS_TZ or UTC)")
	f.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// setup merges flags over the environment and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if userFlag != "" {
		c.User = userFlag
	}
	if langFlag != "" {
		c.Lang = langFlag
	}
	if tzFlag != "" {
		c.TZ = tzFlag
	}
	if logLevelFlag != "" {
		c.LogLevel = logLevelFlag
	}
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("unknown format %q", formatFlag)
	}

	lvl, err := c.Level()
	if err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	cfg = c
	return nil
}

func getDBPath() string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultDBPath()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func currentUser() string {
	if cfg.User == "" {
		return "default"
	}
	return cfg.User
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.UTC
	}
	return loc
}

func displayLanguage() language.Tag {
	return cfg.Language()
}

func snapshotParams() store.SnapshotParams {
	return store.SnapshotParams{User: currentUser(), AsOf: time.Now(), Location: location()}
}

func newEngine() *progress.Engine {
	return progress.Default()
}

// recompute re-evaluates the current user and logs what was unlocked.
func recompute(cmd *cobra.Command, s *store.SQLiteStore) model.Delta {
	p := snapshotParams()
	d, err := s.Recompute(cmd.Context(), p, newEngine())
	if err != nil {
		exitErr("recompute", err)
	}
	if d.Empty() {
		slog.Debug("recompute: nothing new", "user", p.User)
		return d
	}
	attrs := []any{"user", p.User, "unlocked", d.NewlyUnlocked, "xp_delta", d.XPDelta}
	if st, err := s.State(cmd.Context(), p.User); err == nil {
		attrs = append(attrs, "xp", st.XP, "level", ledger.Level(st.XP))
	}
	slog.Info("recompute", attrs...)
	return d
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode output", err)
	}
	fmt.Println(string(b))
}

func textOutput() bool {
	return formatFlag == "text"
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
