package cmd

import (
	"fmt"

	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/spf13/cobra"
)

var (
	listFilter string
	listWith   []string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Case-insensitive name filter")
	listCmd.Flags().StringSliceVarP(&listWith, "with", "w", nil, "Only objects with these components")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inspectable objects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		// Type metadata is only known after the first refresh.
		if _, err := s.frame(cmd.Context()); err != nil {
			return err
		}
		var required []shape.TypeID
		for _, name := range listWith {
			info, ok := s.in.Metadata.Find(name)
			if !ok {
				return fmt.Errorf("%w: %q", inspector.ErrUnknownComponent, name)
			}
			required = append(required, info.ID)
		}
		s.in.State.Filter = listFilter
		s.in.State.Required = required
		if _, err := s.frame(cmd.Context()); err != nil {
			return err
		}

		if listJSON {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), inspector.JSON(inspector.EntitiesDocument(s.in.Entities())))
			return err
		}
		return inspector.WriteEntities(cmd.OutOrStdout(), s.in.Entities(), nil)
	},
}
