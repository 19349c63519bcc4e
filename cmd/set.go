package cmd

import (
	"fmt"
	"strconv"

	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/agentic-research/spyglass/internal/locator"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/agentic-research/spyglass/internal/writeback"
	"github.com/spf13/cobra"
)

var setDryRun bool

func init() {
	setCmd.Flags().BoolVarP(&setDryRun, "dry-run", "n", false, "Resolve the path without writing")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <object> <Component:path> <value>",
	Short: "Write a numeric value to a field",
	Long: `Set writes one numeric field through the same queue and write-back
phase the edit widgets use. The value is coerced to the field's type with
saturation.

Examples:
  spyglass set "Child Red" Transform:Translation[1] 42
  spyglass set 4v0 Stats:Health -5 --dry-run`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", args[2], err)
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		id, err := s.selectObject(args[0])
		if err != nil {
			return err
		}
		var loc locator.Locator
		var before float64
		if err := s.in.World.View(func(r *world.Reader) error {
			var err error
			if loc, err = inspector.ParseTarget(r, id, args[1]); err != nil {
				return err
			}
			before, err = inspector.ReadValue(r, loc)
			return err
		}); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if setDryRun {
			_, err := fmt.Fprintf(out, "%s = %g (dry run, would write %g)\n", loc, before, x)
			return err
		}

		s.in.Queue.Push(writeback.Change{Widget: args[1], Locator: loc, Value: x})
		rep, err := s.frame(cmd.Context())
		if err != nil {
			return err
		}
		for _, res := range rep.Results {
			if res.Err != nil {
				return res.Err
			}
			if _, err := fmt.Fprintf(out, "%s: %g -> %g\n", loc, res.Before, res.After); err != nil {
				return err
			}
		}
		return nil
	},
}
