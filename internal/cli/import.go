package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
	"github.com/rcliao/progress-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a user's data from JSON",
		Long: "Import data in the format produced by export, from a file or stdin, into the current user. " +
			"Existing days are replaced, ledger entries already present are skipped.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		exitErr("read input", err)
	}

	var exp store.Export
	if err := json.Unmarshal(data, &exp); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.Import(cmd.Context(), currentUser(), &exp)
	if err != nil {
		exitErr("import", err)
	}
	d := recompute(cmd, s)

	printJSON(struct {
		OK       bool                `json:"ok"`
		Imported *store.ImportResult `json:"imported"`
		Delta    model.Delta         `json:"delta"`
	}{true, res, d})
}
