package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/session"
)

var (
	resumeGoal    string
	resumeTimeout time.Duration
)

var resumeCmd = &cobra.Command{
	Use:   "resume FILE",
	Short: "Plan a timeline from a resume",
	Long:  "Uploads a PDF, DOCX or TXT resume (at most 5 MB) to the server at --api, prints the extracted profile and plans a timeline from it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

func init() {
	resumeCmd.Flags().StringVarP(&resumeGoal, "goal", "g", "", "Career goal; defaults to the one inferred from the resume")
	resumeCmd.Flags().DurationVar(&resumeTimeout, "timeout", 3*time.Minute, "Overall deadline")
	rootCmd.AddCommand(resumeCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runResume(cmd *cobra.Command, args []string) error {
	if apiURL == "" {
		return fmt.Errorf("resume parsing needs a running server; pass --api")
	}
	_, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := withTimeout(cmd.Context(), resumeTimeout)
	defer cancel()

	sess := session.New(remoteProviders(apiURL, logger), session.WithLogger(logger))
	profile, err := sess.UploadResume(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level:    %s\n", profile.CurrentLevel)
	fmt.Fprintf(out, "Goal:     %s\n", profile.CareerGoal)
	fmt.Fprintf(out, "Skills:   %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(out, "Courses:  %s\n", strings.Join(profile.Courses, ", "))

	if err := sess.PlanFromResume(ctx, resumeGoal); err != nil {
		return fmt.Errorf("failed to generate timeline: %w", err)
	}
	st := sess.Timeline.Get()
	printer := observability.NewPrinter(out)
	printer.PrintTimelinePlan(st.Plan, st.SelectedPath)
	if layout, ok := sess.CurrentLayout(); ok {
		printer.PrintLayoutStats(layout)
	}
	return nil
}
