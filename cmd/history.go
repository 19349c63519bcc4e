package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/agentic-research/spyglass/internal/journal"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent write-backs from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		if !s.cfg.JournalEnabled {
			return errJournalDisabled
		}

		out := cmd.OutOrStdout()
		var entries []journal.Entry
		if _, err := os.Stat(s.cfg.JournalPath); err == nil {
			j, err := s.openJournal()
			if err != nil {
				return err
			}
			if entries, err = j.Recent(cmd.Context(), historyLimit); err != nil {
				return err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("journal %s: %w", s.cfg.JournalPath, err)
		}
		if len(entries) == 0 {
			_, err := fmt.Fprintln(out, "No edits recorded")
			return err
		}
		for _, e := range entries {
			status := "ok"
			if !e.OK {
				status = "FAIL " + e.Error
			}
			fmt.Fprintf(out, "%s  %s/%s:%s  %g -> %g  %s\n",
				e.At.Local().Format("2006-01-02 15:04:05"), e.Object, shape.TypeID(e.Component).Short(), e.Path, e.Before, e.After, status)
		}
		return nil
	},
}
