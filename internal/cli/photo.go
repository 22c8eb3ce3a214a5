package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "photo [date]",
		Short: "Add a progress photo to a day's gallery",
		Args:  cobra.MaximumNArgs(1),
		Run:   runPhoto,
	}

	cmd.Flags().String("at", "", "Capture time, HH:MM or RFC 3339 (default: now)")

	RootCmd.AddCommand(cmd)
}

func runPhoto(cmd *cobra.Command, args []string) {
	date, err := dateArg(args)
	if err != nil {
		exitErr("photo", err)
	}

	takenAt := time.Now()
	if v, _ := cmd.Flags().GetString("at"); v != "" {
		if takenAt, err = parseAt(date, v, location()); err != nil {
			exitErr("photo", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.AddPhoto(cmd.Context(), currentUser(), date, takenAt)
	if err != nil {
		exitErr("add photo", err)
	}
	d := recompute(cmd, s)

	printJSON(struct {
		Date  string      `json:"date"`
		Photo model.Photo `json:"photo"`
		Delta model.Delta `json:"delta"`
	}{date, p, d})
}
