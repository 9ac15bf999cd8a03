package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/db"
	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/roster"
	"github.com/jonathan/course-compass/internal/types"
)

var (
	rosterSemester string
	rosterSubjects []string
	rosterOut      string
	rosterBaseURL  string
	rosterDelay    time.Duration
	rosterUseLLM   bool
	rosterSaveDB   bool
)

var fetchRosterCmd = &cobra.Command{
	Use:   "fetch-roster",
	Short: "Build the course graph from the class roster",
	Long:  "Fetches CS and MATH classes from the class roster API, parses prerequisites, computes degrees and centrality, and writes the node-link graph JSON. Optionally stores the snapshot in Postgres.",
	RunE:  runFetchRoster,
}

func init() {
	fetchRosterCmd.Flags().StringVar(&rosterSemester, "semester", "", "Roster code such as FA25 (default from config)")
	fetchRosterCmd.Flags().StringSliceVar(&rosterSubjects, "subjects", []string{"CS", "MATH"}, "Subjects to fetch")
	fetchRosterCmd.Flags().StringVarP(&rosterOut, "out", "o", "", "Output graph file (default from config)")
	fetchRosterCmd.Flags().StringVar(&rosterBaseURL, "base-url", roster.DefaultBaseURL, "Roster API base URL")
	fetchRosterCmd.Flags().DurationVar(&rosterDelay, "delay", roster.DefaultDelay, "Pause between subject requests")
	fetchRosterCmd.Flags().BoolVar(&rosterUseLLM, "llm", true, "Parse prerequisites with Gemini when a key is configured")
	fetchRosterCmd.Flags().BoolVar(&rosterSaveDB, "save-db", false, "Also store the snapshot in the configured database")
	rootCmd.AddCommand(fetchRosterCmd)
}

func runFetchRoster(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := cmd.Context()

	if rosterSemester == "" {
		rosterSemester = cfg.RosterSemester
	}
	if rosterOut == "" {
		rosterOut = cfg.GraphFile
	}
	subjects := make([]types.Subject, 0, len(rosterSubjects))
	for _, s := range rosterSubjects {
		subjects = append(subjects, types.Subject(s))
	}

	rc := roster.NewClient(
		roster.WithBaseURL(rosterBaseURL),
		roster.WithDelay(rosterDelay),
		roster.WithLogger(logger),
	)
	raw, err := rc.FetchAll(ctx, rosterSemester, subjects)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}
	logger.Info("roster fetched", zap.Int("classes", len(raw)), zap.String("semester", rosterSemester))

	var parser roster.PrereqParser = roster.RegexParser{}
	if rosterUseLLM && cfg.GeminiAPIKey != "" {
		client, err := newLLMClient(ctx, llm.ProviderGemini, cfg.GeminiAPIKey, nil, logger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		parser = roster.LLMParser{Client: client, Logger: logger}
	}

	data, err := roster.Build(ctx, raw, parser)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	if err := catalog.WriteGraphFile(rosterOut, data); err != nil {
		return err
	}

	if rosterSaveDB {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--save-db needs DATABASE_URL")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		if err := database.SaveGraph(ctx, data); err != nil {
			return fmt.Errorf("failed to save graph: %w", err)
		}
		logger.Info("graph snapshot stored in database")
	}

	observability.NewPrinter(os.Stdout).PrintGraphSummary(graph.New(data, logger))
	_, _ = fmt.Fprintf(os.Stdout, "Graph written to %s\n", rosterOut)
	return nil
}
