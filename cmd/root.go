package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	journalPath string
	noJournal   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to spyglass.hcl")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Path to the edit journal (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "Do not record edits")
}

var rootCmd = &cobra.Command{
	Use:   "spyglass",
	Short: "Spyglass: inspect and edit live objects by path",
	Long: `Spyglass reflects over the components of a running world, lists its
objects, renders any object's fields, and writes numeric edits back through
durable path locators.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
