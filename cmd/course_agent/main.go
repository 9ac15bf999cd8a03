// Package main provides the entry point for the course_agent CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "course_agent",
	Short: "Course Compass planner and HTTP API server",
	Long:  "Course Compass explores the CS and MATH prerequisite graph, answers course questions and plans semester timelines toward a career goal.",
}

var (
	configPath string
	verbose    bool
	apiURL     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Base URL of a running server; in-process providers are used when empty")
}

func main() {
	config.LoadEnvFiles()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
