package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/client"
	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/session"
)

var (
	graphFile   string
	graphCourse string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Summarise a course graph",
	Long:  "Prints course and edge counts, per-subject totals and the most central courses of a graph file (or of the server at --api). With --course, also prints the course's prerequisites, unlocks and related courses.",
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphFile, "file", "f", "", "Graph JSON file (default from config)")
	graphCmd.Flags().StringVar(&graphCourse, "course", "", "Focus on one course, e.g. \"CS 2110\"")
	rootCmd.AddCommand(graphCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runGraph(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var providers client.Providers
	if apiURL != "" {
		providers = remoteProviders(apiURL, logger)
	} else {
		path := graphFile
		if path == "" {
			path = cfg.GraphFile
		}
		cat := catalog.New(logger)
		if err := cat.LoadFile(path); err != nil {
			return err
		}
		providers.Graph = cat
	}

	sess := session.New(providers, session.WithLogger(logger))
	if err := sess.LoadGraph(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	g := sess.Graph.Get().Graph
	printer.PrintGraphSummary(g)

	if display, ok := sess.DisplayGraph(); ok {
		synthetic := 0
		for _, l := range display.Links {
			if l.Synthetic() {
				synthetic++
			}
		}
		if synthetic > 0 {
			fmt.Fprintf(out, "No prerequisite edges; %d same-subject links added for display\n", synthetic)
		}
	}

	if graphCourse == "" {
		return nil
	}
	id, _ := extract.NormalizeCode(graphCourse)
	if !sess.SelectCourse(id) {
		return fmt.Errorf("course %q not found", graphCourse)
	}
	selected := sess.Graph.Get().Selected
	fmt.Fprintf(out, "\n%s: %s\n", selected.ID, selected.Title)
	fmt.Fprintln(out, "Prerequisites:")
	printer.PrintCourseCodes(g.Prerequisites(selected.ID))
	fmt.Fprintln(out, "Unlocks:")
	printer.PrintCourseCodes(g.Unlocks(selected.ID))

	if focus, ok := sess.FocusView(); ok {
		related := make([]string, 0, len(focus.Nodes))
		for _, c := range focus.Nodes {
			if c.ID != selected.ID {
				related = append(related, c.ID)
			}
		}
		fmt.Fprintln(out, "Related:")
		printer.PrintCourseCodes(related)
	}
	return nil
}
