package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"docquery/internal/rxsearch"
)

// NewRegexCmd creates the 'regex' command.
func NewRegexCmd() *cobra.Command {
	var in inputFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "regex <pattern>",
		Aliases: []string{"search"},
		Short:   "Find all matches of a regular expression in a document",
		Example: `  docquery regex --file notes.txt '^\d{4}-\d{2}-\d{2}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			matches, err := rxsearch.FindAll(text, args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"results": matches})
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d-%d\t%s\n", m.Start, m.End, m.Text)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
