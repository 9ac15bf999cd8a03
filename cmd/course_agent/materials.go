package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/state"
	"github.com/jonathan/course-compass/internal/timeline"
	"github.com/jonathan/course-compass/internal/types"
)

var materialsCmd = &cobra.Command{
	Use:   "materials [course codes...]",
	Short: "Fetch study materials",
	Long:  "Fetches study materials for the given course codes, or for the first courses of one path of a saved plan (--plan).",
	RunE:  runMaterials,
}

var (
	materialsPlan    string
	materialsPath    string
	materialsTimeout time.Duration
)

func init() {
	materialsCmd.Flags().StringVar(&materialsPlan, "plan", "", "Plan JSON written by 'plan --out'")
	materialsCmd.Flags().StringVarP(&materialsPath, "path", "p", string(types.PathBalanced), "Path of the plan to use")
	materialsCmd.Flags().DurationVar(&materialsTimeout, "timeout", 2*time.Minute, "Overall deadline")
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) error {
	if materialsPlan == "" && len(args) == 0 {
		return fmt.Errorf("either course codes or --plan is required")
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := withTimeout(cmd.Context(), materialsTimeout)
	defer cancel()

	sess, release, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	printer := observability.NewPrinter(os.Stdout)

	if materialsPlan == "" {
		provider := sess.Providers().Materials
		if provider == nil {
			return fmt.Errorf("study materials are not available")
		}
		var all []types.CourseStudyMaterials
		for _, code := range args {
			m, err := provider.StudyMaterials(ctx, code)
			if err != nil {
				return fmt.Errorf("failed to fetch materials for %s: %w", code, err)
			}
			all = append(all, *m)
		}
		printer.PrintStudyMaterials(all)
		return nil
	}

	raw, err := os.ReadFile(materialsPlan)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	plan, err := timeline.ParsePlan(string(raw))
	if err != nil {
		return err
	}
	sess.Timeline.Dispatch(state.SetPlan(plan))
	if err := sess.SelectPath(materialsPath); err != nil {
		return err
	}

	all, err := sess.StudyMaterials(ctx)
	if err != nil {
		return err
	}
	printer.PrintStudyMaterials(all)
	return nil
}
