package cmd

import (
	"fmt"

	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/spf13/cobra"
)

var (
	showTab    string
	showJSON   bool
	showSelect string
)

func init() {
	showCmd.Flags().StringVarP(&showTab, "tab", "t", "components", "Detail tab: components or relationships")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print JSON")
	showCmd.Flags().StringVar(&showSelect, "select", "", "JSONPath expression applied to the JSON view")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <object>",
	Short: "Show an object's components or relationships",
	Long: `Show renders one object. <object> is an ID such as 3v0 or an object name.

Examples:
  spyglass show "Child Red"
  spyglass show 1v0 --tab relationships
  spyglass show 2v0 --select "$.components[*].name"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := inspector.ParseTab(showTab)
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if _, err := s.selectObject(args[0]); err != nil {
			return err
		}
		s.in.State.Tab = tab
		if _, err := s.frame(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case showSelect != "":
			doc := inspector.Document(s.in.View(), s.in.Panel)
			got, err := inspector.Select(doc, showSelect)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, inspector.JSON(got))
			return err
		case showJSON:
			_, err := fmt.Fprintln(out, inspector.JSON(inspector.Document(s.in.View(), s.in.Panel)))
			return err
		}
		return inspector.WriteView(out, s.in.View(), s.in.Panel)
	},
}
