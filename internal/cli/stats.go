package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/ledger"
	"github.com/rcliao/progress-engine/internal/store"
)

type userStats struct {
	store.UserStats
	Level int `json:"level"`
}

func init() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users with XP and level",
		Args:  cobra.NoArgs,
		Run:   runUsers,
	}

	RootCmd.AddCommand(statsCmd, usersCmd)
}

func withLevels(users []store.UserStats) []userStats {
	out := make([]userStats, 0, len(users))
	for _, u := range users {
		out = append(out, userStats{UserStats: u, Level: ledger.Level(u.XP)})
	}
	return out
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	printJSON(struct {
		*store.Stats
		Users []userStats `json:"users"`
	}{stats, withLevels(stats.Users)})
}

func runUsers(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	users, err := s.Users(cmd.Context())
	if err != nil {
		exitErr("list users", err)
	}

	printJSON(withLevels(users))
}
