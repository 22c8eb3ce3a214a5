package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/ledger"
	"github.com/rcliao/progress-engine/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Re-evaluate achievements and award pending XP",
		Long:  "Safe to run any number of times: XP is only awarded for newly unlocked achievements.",
		Args:  cobra.NoArgs,
		Run:   runRecompute,
	}

	RootCmd.AddCommand(cmd)
}

func runRecompute(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	d := recompute(cmd, s)
	state, err := s.State(cmd.Context(), currentUser())
	if err != nil {
		exitErr("load state", err)
	}

	printJSON(struct {
		Delta model.Delta `json:"delta"`
		XP    int         `json:"xp"`
		Level int         `json:"level"`
	}{d, state.XP, ledger.Level(state.XP)})
}
