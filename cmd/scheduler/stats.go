package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var serverHost string

func init() {
	statusCmd.Flags().StringVar(&serverHost, "host", "http://localhost:8080", "The host address of a running server")
	rootCmd.AddCommand(statsCmd, statusCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print counters persisted across runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.metricsStore == nil {
			return errors.New("persisted counters require the sqlite storage backend")
		}
		counters, err := a.metricsStore.GetAll()
		if err != nil {
			return fmt.Errorf("reading counters: %w", err)
		}
		keys := make([]string, 0, len(counters))
		for k := range counters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", k, counters[k])
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the health of a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), serverHost+"/health")
	},
}

func performGetRequest(out io.Writer, url string) error {
	fmt.Fprintf(out, "Making request to %s\n", url)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, string(body))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
