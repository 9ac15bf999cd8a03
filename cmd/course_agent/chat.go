package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-compass/internal/extract"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the course advisor",
	Long:  "Asks the course advisor one question, or starts an interactive conversation reading questions from standard input when none is given. Course codes in replies are listed after each answer.",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runChat(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	sess, release, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	ask := func(question string) {
		msg, err := sess.SendMessage(ctx, question)
		fmt.Fprintf(out, "%s\n", msg.Content)
		if err != nil {
			logger.Sugar().Debugw("chat turn failed", "error", err)
			return
		}
		if len(msg.HighlightedCourses) > 0 {
			fmt.Fprintf(out, "  courses: %s\n", strings.Join(extract.Dedupe(msg.HighlightedCourses), ", "))
		}
	}

	if len(args) > 0 {
		ask(strings.Join(args, " "))
		return nil
	}

	fmt.Fprintln(out, "Ask about courses; an empty line or Ctrl-D ends the conversation.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		ask(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintf(out, "%d messages exchanged\n", len(sess.Chat.Get().Messages))
	return nil
}

