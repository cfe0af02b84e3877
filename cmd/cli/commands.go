package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dryRun    bool
	order     string
	xlsxOut   string
	matchID   string
	playerArg string
)

func init() {
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without recording the match")
	leaderboardCmd.Flags().StringVar(&order, "order", "", "Ranking: name, legs_won, average or mpr")
	leaderboardCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Download the leaderboard workbook to this file")
	leaderboardCmd.Flags().StringVar(&playerArg, "player", "", "Show a single player's stats")
	clearCmd.Flags().StringVar(&matchID, "match", "", "Forget only this imported match")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil, nil)
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Upload a transcript to the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
		q := url.Values{"name": {filepath.Base(args[0])}}
		if dryRun {
			q.Set("dry_run", "true")
		}
		return performRequest(http.MethodPost, "/import?"+q.Encode(), data, nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the league leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if playerArg != "" {
			return performRequest(http.MethodGet, "/stats/player?"+url.Values{"name": {playerArg}}.Encode(), nil, nil)
		}
		q := url.Values{}
		if order != "" {
			q.Set("order", order)
		}
		if xlsxOut == "" {
			return performRequest(http.MethodGet, "/stats?"+q.Encode(), nil, nil)
		}

		q.Set("format", "xlsx")
		f, err := os.Create(xlsxOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", xlsxOut, err)
		}
		defer f.Close()
		return performRequest(http.MethodGet, "/stats?"+q.Encode(), nil, f)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players", nil, nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [ID]",
	Short: "List imported matches, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performRequest(http.MethodGet, "/matches/get?"+url.Values{"id": {args[0]}}.Encode(), nil, nil)
		}
		return performRequest(http.MethodGet, "/matches", nil, nil)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset imported matches and stats on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/clear"
		if matchID != "" {
			endpoint += "?" + url.Values{"matchID": {matchID}}.Encode()
		}
		return performRequest(http.MethodPost, endpoint, nil, nil)
	},
}

// performRequest sends a request to the server and prints the response.
// When out is set the body is copied there instead.
func performRequest(method, endpoint string, body []byte, out io.Writer) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	if out != nil && resp.StatusCode == http.StatusOK {
		n, err := io.Copy(out, resp.Body)
		if err != nil {
			return fmt.Errorf("failed to save response body: %w", err)
		}
		fmt.Printf("Saved %d bytes\n", n)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))
	return nil
}
