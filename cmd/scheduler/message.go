package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/availability"
	"github.com/mauv0809/squad-scheduler/internal/message"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
	"github.com/spf13/cobra"
)

var messageFlags struct {
	file         string
	opponent     int
	host         string
	hostClub     string
	championship string
	observation  string
	avail        []string
	link         bool
	share        bool
	dryRun       bool
}

func init() {
	f := messageCmd.Flags()
	f.StringVarP(&messageFlags.file, "file", "f", "", "Read the form from a JSON file")
	f.IntVarP(&messageFlags.opponent, "opponent", "o", 0, "Opponent id")
	f.StringVar(&messageFlags.host, "host", "", "Host player name")
	f.StringVar(&messageFlags.hostClub, "host-club", "", "Host club")
	f.StringVar(&messageFlags.championship, "championship", "", "Championship")
	f.StringVar(&messageFlags.observation, "observation", "", "Observation for the opponent")
	f.StringArrayVar(&messageFlags.avail, "avail", nil, `Day availability, e.g. "monday=20:00-23:00", "saturday=14:00-16:00,18:00-20:00" or "sunday=-"`)
	f.BoolVar(&messageFlags.link, "link", false, "Also print the WhatsApp link")
	f.BoolVar(&messageFlags.share, "share", false, "Send the message to the configured share targets")
	f.BoolVar(&messageFlags.dryRun, "dry-run", false, "Log what would be shared without sending")

	rootCmd.AddCommand(messageCmd)
}

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Compose the scheduling message for an opponent",
	Long: `Starts from the default form, or from --file, applies the flags given
and prints the message. Fails when the opponent is not in the roster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := formFromFlags(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.scheduler.SetForm(data); err != nil {
			return err
		}
		for _, arg := range messageFlags.avail {
			edits, err := parseAvailability(arg)
			if err != nil {
				return err
			}
			for _, e := range edits {
				if _, err := a.scheduler.EditAvailability(e); err != nil {
					return fmt.Errorf("--avail %s: %w", arg, err)
				}
			}
		}

		var res scheduler.Result
		if messageFlags.share {
			res, err = a.scheduler.Share(cmd.Context(), a.scheduler.Form(), messageFlags.dryRun)
		} else {
			res, err = a.scheduler.Generate()
		}
		if res.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			if messageFlags.link {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), res.Link)
			}
		}
		return err
	},
}

func formFromFlags(cmd *cobra.Command) (message.MatchData, error) {
	data := message.DefaultMatchData()
	if messageFlags.file != "" {
		raw, err := os.ReadFile(messageFlags.file)
		if err != nil {
			return message.MatchData{}, fmt.Errorf("reading form: %w", err)
		}
		data = message.MatchData{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return message.MatchData{}, fmt.Errorf("decoding form %s: %w", messageFlags.file, err)
		}
		log.Debug("Loaded form", "file", messageFlags.file)
	}

	flags := cmd.Flags()
	if flags.Changed("opponent") {
		data.OpponentID = message.SelectOpponent(messageFlags.opponent)
	}
	if flags.Changed("host") {
		data.Host = messageFlags.host
	}
	if flags.Changed("host-club") {
		data.HostClub = messageFlags.hostClub
	}
	if flags.Changed("championship") {
		data.Championship = messageFlags.championship
	}
	if flags.Changed("observation") {
		data.Observation = messageFlags.observation
	}
	return data, nil
}

// parseAvailability turns "day=HH:MM-HH:MM[,HH:MM-HH:MM]" into the edits
// that set both slots of day. "day=-" clears the day. A missing second
// window clears slot2.
func parseAvailability(arg string) ([]scheduler.Edit, error) {
	day, windows, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, fmt.Errorf("invalid availability %q, want day=HH:MM-HH:MM", arg)
	}
	day = strings.TrimSpace(day)
	if _, err := availability.ParseDay(day); err != nil {
		return nil, err
	}

	slots := make([]availability.TimeSlot, 2)
	windows = strings.TrimSpace(windows)
	if windows != "-" && windows != "" {
		parts := strings.Split(windows, ",")
		if len(parts) > 2 {
			return nil, fmt.Errorf("invalid availability %q: at most two windows per day", arg)
		}
		for i, p := range parts {
			start, end, ok := strings.Cut(strings.TrimSpace(p), "-")
			if !ok {
				return nil, fmt.Errorf("invalid window %q, want HH:MM-HH:MM", p)
			}
			slots[i] = availability.TimeSlot{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
		}
	}

	var edits []scheduler.Edit
	for i, slot := range []string{availability.Slot1.String(), availability.Slot2.String()} {
		// End first so a shrinking window never trips the end-after-start check.
		edits = append(edits,
			scheduler.Edit{Day: day, Slot: slot, Field: "end", Value: ""},
			scheduler.Edit{Day: day, Slot: slot, Field: "start", Value: slots[i].Start},
			scheduler.Edit{Day: day, Slot: slot, Field: "end", Value: slots[i].End},
		)
	}
	return edits, nil
}

func init() {
	timesCmd.Flags().String("after", "", "Only list valid end times after this start")
	rootCmd.AddCommand(timesCmd, championshipsCmd)
}

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "List the selectable times",
	RunE: func(cmd *cobra.Command, args []string) error {
		after, _ := cmd.Flags().GetString("after")
		options := availability.TimeOptions()
		if after != "" {
			if !availability.ValidTime(after) {
				return fmt.Errorf("%w: %q", availability.ErrInvalidTime, after)
			}
			options = availability.EndOptions(after)
		}
		for _, o := range options {
			fmt.Fprintln(cmd.OutOrStdout(), o)
		}
		return nil
	},
}

var championshipsCmd = &cobra.Command{
	Use:   "championships",
	Short: "List the championships",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range message.Championships {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}
