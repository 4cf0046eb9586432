// Package main provides a one-shot prediction CLI for local analysis.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/database"
	"github.com/yourusername/pitch-predictor/internal/dataset"
	"github.com/yourusername/pitch-predictor/internal/logger"
	"github.com/yourusername/pitch-predictor/internal/metrics"
	"github.com/yourusername/pitch-predictor/internal/models"
	"github.com/yourusername/pitch-predictor/internal/normalizer"
	"github.com/yourusername/pitch-predictor/internal/predictor"
)

var (
	configFile string
	team1      string
	team2      string
	format     string

	cfg    *config.Config
	appLog *logrus.Logger
	engine *predictor.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&team1, "team1", "", "First team code (e.g. IND)")
	rootCmd.Flags().StringVar(&team2, "team2", "", "Second team code (e.g. AUS)")
	rootCmd.Flags().StringVar(&format, "format", "", "Match format (e.g. ODI, TEST, T20I)")
	rootCmd.MarkFlagRequired("team1")
	rootCmd.MarkFlagRequired("team2")
	rootCmd.MarkFlagRequired("format")
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Compute a win-probability pair for two teams",
	Long:  `Loads the match dataset, applies the scoring heuristics and prints the win-probability breakdown for a hypothetical contest.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger("warn", cfg.App.Environment)
	metrics.InitRegistry()

	ctx := context.Background()

	var db *database.DB
	if cfg.Dataset.Source == "postgres" {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	source, err := dataset.New(cfg, db, appLog)
	if err != nil {
		return fmt.Errorf("failed to create dataset source: %w", err)
	}

	rows, err := source.FetchRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	norm := normalizer.New(cfg.CompetitorCodes(), appLog)
	table := norm.Normalize(rows)
	if table.Len() == 0 {
		return fmt.Errorf("dataset normalized to zero rows")
	}

	engine = predictor.NewEngine(cfg.Prediction, table, appLog)
	return nil
}

func runPredict(ctx context.Context) error {
	req := predictor.Request{
		Team1:  strings.ToUpper(strings.TrimSpace(team1)),
		Team2:  strings.ToUpper(strings.TrimSpace(team2)),
		Format: strings.ToUpper(strings.TrimSpace(format)),
	}

	if req.Team1 == "" || req.Team2 == "" || req.Format == "" {
		return models.ErrMissingTeam
	}
	if req.Team1 == req.Team2 {
		return models.ErrSameTeams
	}
	if !engine.Table().HasFormat(req.Format) {
		return fmt.Errorf("%w: %s (available: %s)",
			models.ErrUnknownFormat, req.Format, strings.Join(engine.Table().Formats(), ", "))
	}

	result, err := engine.Predict(ctx, req)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(r *predictor.Result) {
	fmt.Printf("\n%s vs %s (%s)\n\n", r.Team1, r.Team2, r.Format)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\t%s\n", r.Team1, r.Team2)
	fmt.Fprintf(w, "Win probability\t%.2f%%\t%.2f%%\n", r.Team1Prob, r.Team2Prob)
	fmt.Fprintf(w, "Matches sampled\t%d\t%d\n", r.Stats.Team1.Total, r.Stats.Team2.Total)
	fmt.Fprintf(w, "Wins\t%d\t%d\n", r.Stats.Team1.Wins, r.Stats.Team2.Wins)
	fmt.Fprintf(w, "Win ratio\t%.3f\t%.3f\n", r.Stats.Team1.WinRatio, r.Stats.Team2.WinRatio)
	fmt.Fprintf(w, "Head-to-head used\t%t\t%t\n", r.Stats.Team1HeadToHeadUsed, r.Stats.Team2HeadToHeadUsed)
	fmt.Fprintf(w, "Recent-form fallback\t%t\t%t\n", r.Stats.Team1FallbackUsed, r.Stats.Team2FallbackUsed)
	if r.Team1Odds != nil && r.Team2Odds != nil {
		fmt.Fprintf(w, "Implied odds\t%s\t%s\n", r.Team1Odds.StringFixed(2), r.Team2Odds.StringFixed(2))
	}
	w.Flush()

	if r.InsufficientData {
		fmt.Println("\nWarning: insufficient data for one or both teams; treat this as a coin flip.")
	}
	fmt.Printf("\nPrediction ID: %s\n", r.PredictionID)
}
