package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	opponentFields struct {
		name, phone, club, observation string
	}
	assumeYes bool
)

func init() {
	for _, c := range []*cobra.Command{addOpponentCmd, updateOpponentCmd} {
		c.Flags().StringVar(&opponentFields.name, "name", "", "Opponent name")
		c.Flags().StringVar(&opponentFields.phone, "phone", "", "WhatsApp phone number")
		c.Flags().StringVar(&opponentFields.club, "club", "", "Opponent club")
		c.Flags().StringVar(&opponentFields.observation, "observation", "", "Free-form note")
	}
	removeOpponentCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Remove without asking for confirmation")

	opponentsCmd.AddCommand(listOpponentsCmd, addOpponentCmd, updateOpponentCmd, removeOpponentCmd)
	rootCmd.AddCommand(opponentsCmd)
}

var opponentsCmd = &cobra.Command{
	Use:     "opponents",
	Aliases: []string{"roster"},
	Short:   "Manage the roster of opponents",
}

var listOpponentsCmd = &cobra.Command{
	Use:   "list",
	Short: "List opponents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return printOpponents(cmd.OutOrStdout(), a.roster.List())
	},
}

var addOpponentCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an opponent",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		added, err := a.roster.Add(patchFromFlags(cmd.Flags()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added opponent %d: %s\n", added.ID, added.Name)
		return nil
	},
}

var updateOpponentCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of an opponent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		updated, err := a.roster.Update(id, patchFromFlags(cmd.Flags()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated opponent %d: %s\n", updated.ID, updated.Name)
		return nil
	},
}

var removeOpponentCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an opponent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		opponent, ok := a.roster.Lookup(id)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No opponent with id %d\n", id)
			return nil
		}
		if !assumeYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remover %s?", opponent.Name)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
		if err := a.roster.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed opponent %d: %s\n", id, opponent.Name)
		return nil
	},
}

// patchFromFlags sets only the fields whose flags were given.
func patchFromFlags(flags *pflag.FlagSet) roster.OpponentPatch {
	var patch roster.OpponentPatch
	set := func(name string, value string, dst **string) {
		if flags.Changed(name) {
			v := value
			*dst = &v
		}
	}
	set("name", opponentFields.name, &patch.Name)
	set("phone", opponentFields.phone, &patch.Phone)
	set("club", opponentFields.club, &patch.Club)
	set("observation", opponentFields.observation, &patch.Observation)
	return patch
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid opponent id %q", s)
	}
	return id, nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [s/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func printOpponents(out io.Writer, opponents []roster.Opponent) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tCLUB\tOBSERVATION")
	for _, o := range opponents {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.Name, o.Phone, o.Club, o.Observation)
	}
	return w.Flush()
}
