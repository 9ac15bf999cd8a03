package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/observability"
)

var extractUnique bool

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Print the course codes mentioned in text",
	Long:  "Prints every CS or MATH course code found in the arguments, or in standard input when no arguments are given.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&extractUnique, "unique", "u", false, "Drop repeated codes")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text = string(data)
	}

	codes := extract.CourseCodes(text)
	if extractUnique {
		codes = extract.Dedupe(codes)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCourseCodes(codes)
	return nil
}
