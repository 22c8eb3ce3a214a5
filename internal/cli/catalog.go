package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type catalogEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	XP          int      `json:"xp"`
	Requires    []string `json:"requires,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the achievement catalog",
		Args:  cobra.NoArgs,
		Run:   runCatalog,
	}

	RootCmd.AddCommand(cmd)
}

func runCatalog(cmd *cobra.Command, args []string) {
	lang := displayLanguage()
	var entries []catalogEntry
	for _, d := range newEngine().Catalog().Definitions() {
		entries = append(entries, catalogEntry{
			ID:          d.ID,
			Title:       d.Title.In(lang),
			Description: d.Description.In(lang),
			XP:          d.XP,
			Requires:    d.Requires,
		})
	}

	if !textOutput() {
		printJSON(entries)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tXP\tTITLE\tREQUIRES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.ID, e.XP, e.Title, strings.Join(e.Requires, ","))
	}
	w.Flush()
}
