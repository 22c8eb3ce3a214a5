package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List XP ledger entries",
		Args:  cobra.NoArgs,
		Run:   runLedger,
	}

	cmd.Flags().IntP("limit", "l", 20, "Most recent entries to show (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runLedger(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Ledger(cmd.Context(), currentUser(), limit)
	if err != nil {
		exitErr("ledger", err)
	}

	if !textOutput() {
		printJSON(entries)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tAMOUNT\tSOURCE\tNOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%+d\t%s\t%s\n", e.At.In(location()).Format(time.DateTime), e.Amount, e.Source, e.Note)
	}
	w.Flush()
}
