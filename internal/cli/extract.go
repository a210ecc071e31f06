package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docquery/internal/pdftext"
	"docquery/internal/util"
	"docquery/internal/validate"
)

// NewExtractCmd creates the 'extract' command.
func NewExtractCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract plain text from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.PDF(args[0]).Err(); err != nil {
				return err
			}
			doc, err := pdftext.ExtractFile(args[0])
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := util.WriteTextAtomic(outPath, doc.Text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d pages to %s\n", doc.Pages, outPath)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the text to a file instead of stdout")
	return cmd
}
