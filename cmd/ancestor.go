package cmd

import (
	"fmt"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/spf13/cobra"
)

var (
	ancOf     string
	ancName   string
	ancTag    string
	ancActive bool
)

func init() {
	ancestorCmd.Flags().StringVar(&ancOf, "of", "", "Path of the node whose ancestors are searched")
	ancestorCmd.Flags().StringVar(&ancName, "name", "", "Match ancestors with this exact name")
	ancestorCmd.Flags().StringVar(&ancTag, "tag", "", "Match ancestors carrying this tag")
	ancestorCmd.Flags().BoolVar(&ancActive, "active", false, "Only consider active ancestors")
	_ = ancestorCmd.MarkFlagRequired("of")
	rootCmd.AddCommand(ancestorCmd)
}

var ancestorCmd = &cobra.Command{
	Use:   "ancestor",
	Short: "Walk a node's parent chain looking for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		pred, err := buildPredicate(ancName, ancTag)
		if err != nil {
			return err
		}
		// Ancestor search has no built-in activity filter; opt in by
		// composing it into the predicate.
		if ancActive {
			pred = hierarchy.And(pred, hierarchy.IsActive)
		}

		g, err := loadScene()
		if err != nil {
			return err
		}
		start := hierarchy.FindPath(g.Root(), ancOf)
		if start == nil {
			return fmt.Errorf("no node at path %q", ancOf)
		}
		n, err := hierarchy.FindAncestor(start, pred)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("no matching ancestor above %s", ancOf)
		}
		fmt.Println(hierarchy.PathOf(n))
		return nil
	},
}
