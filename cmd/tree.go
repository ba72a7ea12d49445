package cmd

import (
	"fmt"
	"strings"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/pgdebus/scenewalk/internal/scene"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the hierarchy as an indented tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadScene()
		if err != nil {
			return err
		}
		return hierarchy.Walk(g.Root(), func(n hierarchy.Node) error {
			line := strings.Repeat("  ", hierarchy.Depth(n)) + n.Name()
			if !n.Active() {
				line += " (inactive)"
			}
			if o, ok := n.(*scene.Object); ok {
				if tags := g.TagsOf(o); len(tags) > 0 {
					line += " [" + strings.Join(tags, ", ") + "]"
				}
			}
			fmt.Println(line)
			return nil
		})
	},
}
