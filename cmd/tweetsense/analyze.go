package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tweetsense/internal/analyzer"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text...>",
		Short: "Analyze the sentiment of one text and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, log, model, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			out, err := analyzer.New(model, model.Backend(), log).Analyze(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func printOutcome(w io.Writer, out *analyzer.Outcome) {
	if out.Empty() {
		fmt.Fprintln(w, out.Prompt)
		return
	}
	fmt.Fprintf(w, "Sentiment: %s %s\n", out.Sentiment.Text, out.Sentiment.Icon)
	fmt.Fprintf(w, "Confidence Score: %s\n", out.Score)
}
