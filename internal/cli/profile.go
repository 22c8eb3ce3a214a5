package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/progress-engine/internal/model"
	"github.com/rcliao/progress-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the profile and chat counters",
		Long:  "Without flags, print the profile. Gender is one of female, male, other, na.",
		Args:  cobra.NoArgs,
		Run:   runProfile,
	}

	cmd.Flags().String("name", "", "Name")
	cmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().String("gender", "", "Gender: female, male, other, na")
	cmd.Flags().Float64("height", 0, "Height in cm")
	cmd.Flags().Int("chat-messages", 0, "Set the number of chat messages sent")
	cmd.Flags().Int("saved-tips", 0, "Set the number of saved tips")

	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	user := currentUser()
	f := cmd.Flags()

	snap, err := s.Snapshot(ctx, store.SnapshotParams{User: user})
	if err != nil {
		exitErr("get profile", err)
	}
	p := snap.Profile
	counters := store.Counters{ChatMessages: snap.ChatMessages, SavedTips: snap.SavedTips}

	changed := func(names ...string) bool {
		for _, n := range names {
			if f.Changed(n) {
				return true
			}
		}
		return false
	}

	if !changed("name", "dob", "gender", "height", "chat-messages", "saved-tips") {
		printJSON(struct {
			Profile  model.Profile  `json:"profile"`
			Complete bool           `json:"complete"`
			Counters store.Counters `json:"counters"`
		}{p, p.Complete(), counters})
		return
	}

	if changed("name", "dob", "gender", "height") {
		if f.Changed("name") {
			p.Name, _ = f.GetString("name")
		}
		if f.Changed("dob") {
			p.DOB, _ = f.GetString("dob")
			if p.DOB != "" {
				if _, err := model.ParseDate(p.DOB); err != nil {
					exitErr("profile", err)
				}
			}
		}
		if f.Changed("gender") {
			p.Gender, _ = f.GetString("gender")
		}
		if f.Changed("height") {
			h, _ := f.GetFloat64("height")
			p.HeightCM = &h
		}
		if err := s.PutProfile(ctx, user, p); err != nil {
			exitErr("put profile", err)
		}
	}

	if changed("chat-messages", "saved-tips") {
		if f.Changed("chat-messages") {
			counters.ChatMessages, _ = f.GetInt("chat-messages")
		}
		if f.Changed("saved-tips") {
			counters.SavedTips, _ = f.GetInt("saved-tips")
		}
		if err := s.SetCounters(ctx, user, counters); err != nil {
			exitErr("set counters", err)
		}
	}

	d := recompute(cmd, s)
	printJSON(struct {
		Profile  model.Profile  `json:"profile"`
		Complete bool           `json:"complete"`
		Counters store.Counters `json:"counters"`
		Delta    model.Delta    `json:"delta"`
	}{p, p.Complete(), counters, d})
}
