package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a semester timeline toward a career goal",
	Long:  "Generates the theorist, engineer and balanced timelines for a career goal, prints the selected path with its layout statistics and optionally its study materials.",
	RunE:  runPlan,
}

var (
	planGoal      string
	planCompleted []string
	planSemester  string
	planPath      string
	planMaterials bool
	planOut       string
	planTimeout   time.Duration
)

func init() {
	planCmd.Flags().StringVarP(&planGoal, "goal", "g", "", "Career goal (required)")
	planCmd.Flags().StringSliceVarP(&planCompleted, "completed", "c", nil, "Completed courses, e.g. \"CS 1110,MATH 1910\"")
	planCmd.Flags().StringVar(&planSemester, "semester", "", "Current semester (default \""+types.DefaultCurrentSemester+"\")")
	planCmd.Flags().StringVarP(&planPath, "path", "p", string(types.PathBalanced), "Path to show: theorist, engineer or balanced")
	planCmd.Flags().BoolVar(&planMaterials, "materials", false, "Also fetch study materials for the path's first courses")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "Write the full plan JSON to this file")
	planCmd.Flags().DurationVar(&planTimeout, "timeout", 2*time.Minute, "Overall deadline")

	if err := planCmd.MarkFlagRequired("goal"); err != nil {
		panic(fmt.Sprintf("failed to mark goal flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(planGoal) == "" {
		return fmt.Errorf("goal must not be empty")
	}
	if _, err := types.ParsePathKey(planPath); err != nil {
		return err
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := withTimeout(cmd.Context(), planTimeout)
	defer cancel()

	sess, release, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	req := types.TimelineRequest{
		CareerGoal:       planGoal,
		CompletedCourses: planCompleted,
		CurrentSemester:  planSemester,
	}
	if err := sess.GenerateTimeline(ctx, req); err != nil {
		return fmt.Errorf("failed to generate timeline: %w", err)
	}
	if err := sess.SelectPath(planPath); err != nil {
		return err
	}

	st := sess.Timeline.Get()
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintTimelinePlan(st.Plan, st.SelectedPath)
	if layout, ok := sess.CurrentLayout(); ok {
		printer.PrintLayoutStats(layout)
	}

	if planMaterials {
		all, err := sess.StudyMaterials(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch study materials: %w", err)
		}
		printer.PrintStudyMaterials(all)
	}

	if planOut != "" {
		data, err := json.MarshalIndent(st.Plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		if err := os.WriteFile(planOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Plan written to %s\n", planOut)
	}
	return nil
}
