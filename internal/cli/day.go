package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Record pills, drinks and weight for a day",
		Long: "Update the record of a day (YYYY-MM-DD, today or yesterday; default today). " +
			"Only the flags given are changed. The achievement catalog is re-evaluated afterwards.",
		Args: cobra.MaximumNArgs(1),
		Run:  runDay,
	}

	cmd.Flags().Bool("morning", false, "Morning pill taken")
	cmd.Flags().Bool("evening", false, "Evening pill taken")
	cmd.Flags().Int("water", 0, "Set water glasses")
	cmd.Flags().Int("add-water", 0, "Add water glasses")
	cmd.Flags().Int("coffee", 0, "Set coffee cups")
	cmd.Flags().Int("add-coffee", 0, "Add coffee cups")
	cmd.Flags().Bool("slim-coffee", false, "Slim coffee")
	cmd.Flags().Bool("ginger-tea", false, "Ginger-garlic tea")
	cmd.Flags().Bool("water-cure", false, "Water cure")
	cmd.Flags().Bool("sport", false, "Sport")
	cmd.Flags().Float64("weight", 0, "Weight in kg")
	cmd.Flags().String("weighed-at", "", "Weigh-in time, HH:MM or RFC 3339 (default: now)")
	cmd.Flags().Bool("clear-weight", false, "Remove the weight of the day")

	RootCmd.AddCommand(cmd)
}

func runDay(cmd *cobra.Command, args []string) {
	date, err := dateArg(args)
	if err != nil {
		exitErr("day", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Day(cmd.Context(), currentUser(), date)
	if err != nil {
		exitErr("get day", err)
	}

	f := cmd.Flags()
	setBool := func(name string, dst *bool) {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}
	setBool("morning", &rec.Pills.Morning)
	setBool("evening", &rec.Pills.Evening)
	setBool("slim-coffee", &rec.Drinks.SlimCoffee)
	setBool("ginger-tea", &rec.Drinks.GingerGarlicTea)
	setBool("water-cure", &rec.Drinks.WaterCure)
	setBool("sport", &rec.Drinks.Sport)

	if f.Changed("water") {
		rec.Drinks.Water, _ = f.GetInt("water")
	}
	if f.Changed("add-water") {
		n, _ := f.GetInt("add-water")
		rec.Drinks.Water = max(rec.Drinks.Water+n, 0)
	}
	if f.Changed("coffee") {
		rec.Drinks.Coffee, _ = f.GetInt("coffee")
	}
	if f.Changed("add-coffee") {
		n, _ := f.GetInt("add-coffee")
		rec.Drinks.Coffee = max(rec.Drinks.Coffee+n, 0)
	}

	if f.Changed("weight") {
		w, _ := f.GetFloat64("weight")
		at := time.Now()
		if v, _ := f.GetString("weighed-at"); v != "" {
			if at, err = parseAt(date, v, location()); err != nil {
				exitErr("day", err)
			}
		}
		rec.Weight = &w
		rec.WeightAt = &at
	}
	if drop, _ := f.GetBool("clear-weight"); drop {
		rec.Weight, rec.WeightAt = nil, nil
	}

	if err := s.PutDay(cmd.Context(), currentUser(), rec); err != nil {
		exitErr("put day", err)
	}
	d := recompute(cmd, s)

	printJSON(struct {
		Day   model.DayRecord `json:"day"`
		Delta model.Delta     `json:"delta"`
	}{rec, d})
}
