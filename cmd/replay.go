package cmd

import (
	"fmt"
	"time"

	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/agentic-research/spyglass/internal/script"
	"github.com/spf13/cobra"
)

var replayShow bool

func init() {
	replayCmd.Flags().BoolVar(&replayShow, "show", false, "Print the final view")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.hcl>",
	Short: "Replay scripted input against the demo world",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := script.Load(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		rep, err := script.Run(cmd.Context(), s.in, sc, time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var writes, failed int
		for _, f := range rep.Frames {
			for _, res := range f.Results {
				writes++
				if res.Err != nil {
					failed++
					fmt.Fprintf(out, "frame %d: %v\n", f.Frame, res.Err)
				}
			}
		}
		fmt.Fprintf(out, "%d frames, %d writes, %d failed\n", len(rep.Frames), writes, failed)
		for _, o := range rep.Outcomes {
			if o.OK() {
				fmt.Fprintf(out, "ok   %s = %g\n", o.Target, o.Got)
			} else {
				fmt.Fprintf(out, "FAIL %v\n", o.Err)
			}
		}
		if replayShow {
			if err := inspector.WriteView(out, s.in.View(), s.in.Panel); err != nil {
				return err
			}
		}
		if rep.Failed() {
			return fmt.Errorf("replay %s failed", args[0])
		}
		return nil
	},
}
