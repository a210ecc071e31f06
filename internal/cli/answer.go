package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docquery/internal/answer"
)

// NewAnswerCmd creates the 'answer' command.
func NewAnswerCmd() *cobra.Command {
	var in inputFlags
	var topK int
	var jsonOutput bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "answer <question>",
		Short: "Answer a question from a document",
		Example: `  docquery answer --file report.pdf "What is renewable energy?"
  docquery answer --text "Cats are mammals." cats --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			engine := answer.New(
				answer.WithMatchLimit(topK),
				answer.WithMonitor(cascadeLogger(cmd, verbose).AnswerMonitor()),
			)
			res := engine.Answer(strings.Join(args, " "), text)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd, res)
			if err := res.Err(); err != nil && !errors.Is(err, answer.ErrNoMatch) {
				return err
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().IntVarP(&topK, "top-k", "k", answer.DefaultMatchLimit, "Number of ranked matches to show")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log cascade events to stderr")
	return cmd
}

func printResult(cmd *cobra.Command, res answer.Result) {
	out := cmd.OutOrStdout()
	if !res.Found() {
		fmt.Fprintln(out, "No answer found.")
		return
	}
	fmt.Fprintf(out, "Answer: %s\n", *res.DirectAnswer)
	fmt.Fprintf(out, "Strategy: %s\n", res.PatternUsed)
	if len(res.Matches) > 1 {
		fmt.Fprintln(out, "\nOther matches:")
		for i, m := range res.Matches[1:] {
			fmt.Fprintf(out, "  %d. %s\n", i+2, m)
		}
	}
}
