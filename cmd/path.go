package cmd

import (
	"fmt"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path [name]",
	Short: "Print the full path of the first node with the given name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		g, err := loadScene()
		if err != nil {
			return err
		}
		root := g.Root()
		if root.Name() == name {
			fmt.Println(hierarchy.PathOf(root))
			return nil
		}
		n, err := hierarchy.FindDescendant(root, hierarchy.ByName(name), false, hierarchy.BreadthFirst)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("no node named %q", name)
		}
		fmt.Println(hierarchy.PathOf(n))
		return nil
	},
}
