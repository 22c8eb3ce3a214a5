package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
)

var cycleMetrics = []string{"mood", "energy", "pain", "sleep", "stress", "appetite", "cravings", "focus", "libido"}

func init() {
	cmd := &cobra.Command{
		Use:   "cycle [date]",
		Short: "Log cycle and wellness metrics for a day",
		Long: "Update the cycle log of a day. Metrics use a 1-10 scale. Symptoms are a comma-separated " +
			"list; prefix a symptom with - to remove it.",
		Args: cobra.MaximumNArgs(1),
		Run:  runCycle,
	}

	for _, m := range cycleMetrics {
		cmd.Flags().Int(m, 0, strings.ToUpper(m[:1])+m[1:]+" (1-10)")
	}
	cmd.Flags().String("symptoms", "", "Symptoms to add or remove (comma-separated)")
	cmd.Flags().Bool("period", false, "Period day")
	cmd.Flags().Int("flow", 0, "Flow intensity (1-10, period days only)")

	RootCmd.AddCommand(cmd)
}

func runCycle(cmd *cobra.Command, args []string) {
	date, err := dateArg(args)
	if err != nil {
		exitErr("cycle", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	l, err := s.CycleLog(cmd.Context(), currentUser(), date)
	if err != nil {
		exitErr("get cycle log", err)
	}

	f := cmd.Flags()
	fields := map[string]**int{
		"mood": &l.Mood, "energy": &l.Energy, "pain": &l.Pain, "sleep": &l.Sleep,
		"stress": &l.Stress, "appetite": &l.Appetite, "cravings": &l.Cravings,
		"focus": &l.Focus, "libido": &l.Libido, "flow": &l.Flow,
	}
	for name, dst := range fields {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			*dst = &v
		}
	}
	if f.Changed("period") {
		l.Period, _ = f.GetBool("period")
	}
	if v, _ := f.GetString("symptoms"); v != "" {
		if l.Symptoms == nil {
			l.Symptoms = map[string]bool{}
		}
		for _, sym := range splitList(v) {
			if name, ok := strings.CutPrefix(sym, "-"); ok {
				delete(l.Symptoms, name)
				continue
			}
			l.Symptoms[sym] = true
		}
	}

	if err := s.PutCycleLog(cmd.Context(), currentUser(), date, l); err != nil {
		exitErr("put cycle log", err)
	}
	d := recompute(cmd, s)

	printJSON(struct {
		Date  string         `json:"date"`
		Log   model.CycleLog `json:"log"`
		Delta model.Delta    `json:"delta"`
	}{date, l, d})
}
