package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "blamecmp",
	Short: "blamecmp — cross-validate two blame implementations over one repository",
	Long: `blamecmp runs a reference blame tool and a candidate blame tool over every
tracked text file of a repository, aligns the two outputs line-for-line,
and reports which files agree on the revision that introduced each line.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blamecmp: %s\n", err)
		os.Exit(1)
	}
}
