package cmd

import (
	"fmt"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/spf13/cobra"
)

var (
	findName   string
	findTag    string
	findActive bool
	findOrder  string
	findAll    bool
	findUnder  string
)

func init() {
	findCmd.Flags().StringVar(&findName, "name", "", "Match nodes with this exact name")
	findCmd.Flags().StringVar(&findTag, "tag", "", "Match nodes carrying this tag")
	findCmd.Flags().BoolVar(&findActive, "active", false, "Only consider active nodes")
	findCmd.Flags().StringVar(&findOrder, "order", "depth", "Traversal order for single-result search: depth or breadth")
	findCmd.Flags().BoolVar(&findAll, "all", false, "Collect every match instead of the first")
	findCmd.Flags().StringVar(&findUnder, "under", "", "Search below this path instead of the root")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the hierarchy for nodes by name or tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		pred, err := buildPredicate(findName, findTag)
		if err != nil {
			return err
		}
		order := hierarchy.DepthFirst
		switch findOrder {
		case "depth":
		case "breadth":
			order = hierarchy.BreadthFirst
		default:
			return fmt.Errorf("unknown order %q (want depth or breadth)", findOrder)
		}

		g, err := loadScene()
		if err != nil {
			return err
		}
		start := hierarchy.Node(g.Root())
		if findUnder != "" {
			start = hierarchy.FindPath(g.Root(), findUnder)
			if start == nil {
				return fmt.Errorf("no node at path %q", findUnder)
			}
		}

		if findAll {
			matches, err := hierarchy.FindDescendants(start, pred, findActive)
			if err != nil {
				return err
			}
			for _, n := range matches {
				fmt.Println(hierarchy.PathOf(n))
			}
			return nil
		}

		n, err := hierarchy.FindDescendant(start, pred, findActive, order)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("no match below %s", hierarchy.PathOf(start))
		}
		fmt.Println(hierarchy.PathOf(n))
		return nil
	},
}

// buildPredicate combines the --name and --tag flags; at least one is
// required.
func buildPredicate(name, tag string) (hierarchy.Predicate, error) {
	var preds []hierarchy.Predicate
	if name != "" {
		preds = append(preds, hierarchy.ByName(name))
	}
	if tag != "" {
		preds = append(preds, hierarchy.ByTag(tag))
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("nothing to match: pass --name and/or --tag")
	}
	if len(preds) == 1 {
		return preds[0], nil
	}
	return hierarchy.And(preds...), nil
}
