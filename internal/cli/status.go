package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
	"github.com/rcliao/progress-engine/internal/progress"
)

func init() {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show achievement progress, XP and level",
		Long:  "Evaluate the catalog against the stored data without changing anything.",
		Args:  cobra.NoArgs,
		Run:   runStatus,
	}
	statusCmd.Flags().Bool("completed", false, "Only show completed achievements")
	statusCmd.Flags().Bool("open", false, "Only show achievements not yet completed")

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "Show achievement chains and their next step",
		Args:  cobra.NoArgs,
		Run:   runChains,
	}

	RootCmd.AddCommand(statusCmd, chainsCmd)
}

func loadReport(cmd *cobra.Command) progress.Report {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	snap, err := s.Snapshot(ctx, snapshotParams())
	if err != nil {
		exitErr("load snapshot", err)
	}
	state, err := s.State(ctx, currentUser())
	if err != nil {
		exitErr("load state", err)
	}
	return newEngine().Report(snap, state, displayLanguage())
}

func runStatus(cmd *cobra.Command, args []string) {
	onlyDone, _ := cmd.Flags().GetBool("completed")
	onlyOpen, _ := cmd.Flags().GetBool("open")

	r := loadReport(cmd)
	filtered := r.Achievements[:0:0]
	for _, a := range r.Achievements {
		if (onlyDone && !a.Completed) || (onlyOpen && a.Completed) {
			continue
		}
		filtered = append(filtered, a)
	}
	r.Achievements = filtered

	if !textOutput() {
		printJSON(r)
		return
	}

	fmt.Printf("xp %d  level %d  unlocked %d\n\n", r.XP, r.Level, len(r.UnlockedIDs))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPROGRESS\tXP")
	for _, a := range r.Achievements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.ID, a.Title, bar(a), a.XP)
	}
	w.Flush()
}

func runChains(cmd *cobra.Command, args []string) {
	r := loadReport(cmd)
	if !textOutput() {
		printJSON(r.Chains)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHAIN\tDONE\tNEXT")
	for _, c := range r.Chains {
		next := "-"
		if c.Next != nil {
			next = fmt.Sprintf("%s (%d%%)", c.Next.Title, c.Next.Percent)
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%s\n", c.Title, c.Completed, c.Total, next)
	}
	w.Flush()
}

func bar(a model.AchievementStatus) string {
	if a.Completed {
		return "done"
	}
	return fmt.Sprintf("%d%%", a.Percent)
}
