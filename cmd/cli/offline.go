package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/dartledger/internal/config"
	"github.com/mauv0809/dartledger/internal/database"
	"github.com/mauv0809/dartledger/internal/export"
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/metrics"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/mauv0809/dartledger/internal/processor"
	"github.com/mauv0809/dartledger/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	rosterFile  string
	jsonOut     bool
	statsXLSX   string
	statsOrder  string
	parallelism int
)

func init() {
	parseCmd.Flags().StringVar(&rosterFile, "roster", "", "YAML roster of known player names")
	parseCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the parsed matches as JSON")

	statsCmd.Flags().StringVar(&rosterFile, "roster", "", "YAML roster used to fold aliases into players")
	statsCmd.Flags().StringVar(&statsXLSX, "xlsx", "", "Write the leaderboard workbook to this file")
	statsCmd.Flags().StringVar(&statsOrder, "order", "", "Ranking: name, legs_won, average or mpr")
	statsCmd.Flags().IntVar(&parallelism, "workers", 4, "Transcripts parsed in parallel")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(statsCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a transcript locally and print its legs and warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := loadRoster()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
		res, err := parser.New(parser.NewKnownNames(roster.Names()...)).Parse(data)
		if err != nil {
			return err
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		for i, m := range res.Matches {
			rows := [][]string{}
			for _, g := range m.Legs() {
				for _, ls := range stats.LegStats(g) {
					r := ls.Record()
					rows = append(rows, []string{
						fmt.Sprintf("%d.%d.%d", g.SetNumber, g.GameNumber, g.LegNumber),
						string(g.Format),
						ls.Player,
						strconv.FormatBool(ls.Won),
						strconv.Itoa(ls.Darts),
						fmt.Sprintf("%.2f", r.ThreeDartAverage()),
						fmt.Sprintf("%.2f", r.MarksPerRound()),
					})
				}
			}
			fmt.Printf("Match %d: %s", i+1, m.Date)
			if m.HomeTeam != "" || m.AwayTeam != "" {
				fmt.Printf(" (%s vs %s)", m.HomeTeam, m.AwayTeam)
			}
			fmt.Println()
			fmt.Println(newTable("Leg", "Format", "Player", "Won", "Darts", "3DA", "MPR").Rows(rows...))
		}
		for _, w := range res.Warnings {
			fmt.Println("warning:", w.String())
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE...",
	Short: "Aggregate player stats across transcripts locally",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := loadRoster()
		if err != nil {
			return err
		}
		sortOrder, err := league.ParseStatsOrder(statsOrder)
		if err != nil {
			return err
		}

		transcripts := make([]processor.Transcript, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read transcript: %w", err)
			}
			transcripts = append(transcripts, processor.Transcript{Name: filepath.Base(path), Data: data})
		}

		// The offline pipeline is the server's, over a throwaway database.
		db, teardown, err := database.InitDB(":memory:", "", "")
		if err != nil {
			return err
		}
		defer teardown()
		store := league.New(db)
		if err := store.UpsertPlayers(roster.Players()); err != nil {
			return err
		}
		proc := processor.New(store, metrics.NewService(prometheus.NewRegistry()), nil, processor.Options{
			AutoRegister: true,
			Workers:      parallelism,
		})

		items, err := proc.ImportBatch(cmd.Context(), transcripts, false)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.Err != nil {
				log.Warn("Skipped transcript", "source", item.Name, "error", item.Err)
				continue
			}
			for _, w := range item.Result.Warnings {
				log.Debug("Parse warning", "source", item.Name, "warning", w.String())
			}
		}

		board, err := store.GetPlayerStats(sortOrder)
		if err != nil {
			return err
		}
		records := make([]stats.Record, len(board))
		rows := make([][]string, len(board))
		for i, ps := range board {
			r := ps.Stats
			records[i] = r
			rows[i] = []string{
				ps.PlayerName,
				ps.Team,
				fmt.Sprintf("%d/%d", r.X01LegsWon, r.X01LegsPlayed),
				fmt.Sprintf("%.2f", r.ThreeDartAverage()),
				fmt.Sprintf("%.2f", r.First9Average()),
				fmt.Sprintf("%.2f", r.CheckoutPercentage()),
				strconv.Itoa(r.X01HighTurn),
				fmt.Sprintf("%d/%d", r.CricketLegsWon, r.CricketLegsPlayed),
				fmt.Sprintf("%.2f", r.MarksPerRound()),
			}
		}
		fmt.Println(newTable("Player", "Team", "X01 W/P", "3DA", "F9", "CO%", "High", "Cricket W/P", "MPR").Rows(rows...))

		if statsXLSX == "" {
			return nil
		}
		f, err := os.Create(statsXLSX)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", statsXLSX, err)
		}
		defer f.Close()
		if err := export.WriteLeaderboard(f, records); err != nil {
			return err
		}
		log.Info("Wrote leaderboard workbook", "file", statsXLSX, "players", len(records))
		return nil
	},
}

func loadRoster() (*config.Roster, error) {
	if rosterFile == "" {
		return &config.Roster{}, nil
	}
	return config.LoadRoster(rosterFile)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
