// Command interviewd serves candidate interviews over HTTP and runs them on the console.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "interviewd",
	Short:         "Interview Assistant server",
	Long:          "interviewd runs timed technical interviews: resume intake, six scored questions and a reviewer dashboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
