// Package cli implements the docquery command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docquery/internal/logger"
	"docquery/internal/pdftext"
)

// NewRootCmd assembles the docquery command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "docquery",
		Short: "Answer questions from documents without a model",
		Long: `docquery extracts text from PDFs, searches it with regular expressions
and answers natural-language questions by ranking matching sentences.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		NewAnswerCmd(),
		NewRegexCmd(),
		NewExtractCmd(),
		NewMCPCmd(version),
	)
	return root
}

// input flags shared by commands that read a document.
type inputFlags struct {
	text string
	file string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "Document text (use - to read stdin)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Path to a .pdf or plain-text document")
}

func (f *inputFlags) read(cmd *cobra.Command) (string, error) {
	switch {
	case f.text != "" && f.file != "":
		return "", fmt.Errorf("use either --text or --file, not both")
	case f.text == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case f.text != "":
		return f.text, nil
	case strings.HasSuffix(strings.ToLower(f.file), ".pdf"):
		doc, err := pdftext.ExtractFile(f.file)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	case f.file != "":
		b, err := os.ReadFile(f.file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.file, err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("a document is required: pass --text or --file")
	}
}

func cascadeLogger(cmd *cobra.Command, verbose bool) *logger.Logger {
	if !verbose {
		return logger.Nop()
	}
	return logger.New(logger.Config{Level: "debug", Pretty: true, Output: cmd.ErrOrStderr()})
}
