package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's data as JSON",
		Long:  "Export days, cycle logs, photos, profile, unlocked achievements and the XP ledger of the current user.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exp, err := s.ExportAll(cmd.Context(), currentUser())
	if err != nil {
		exitErr("export", err)
	}

	printJSON(exp)
}
