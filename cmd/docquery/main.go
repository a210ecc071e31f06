/*
Package main is the entry point for the docquery CLI.

Usage:

	docquery answer --file report.pdf "What is renewable energy?"
	docquery regex --text "a1 b22" '\d+'
	docquery extract report.pdf --out report.txt
	docquery mcp
*/
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"docquery/internal/cli"
)

// Set via ldflags during build.
var version = "dev"

func main() {
	_ = godotenv.Load(".env")
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
