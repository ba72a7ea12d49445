package cmd

import (
	"fmt"

	"github.com/pgdebus/scenewalk/internal/scene"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [output.db]",
	Short: "Write the loaded scene to a SQLite snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadScene()
		if err != nil {
			return err
		}
		if err := scene.Save(g, args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported scene to %s\n", args[0])
		return nil
	},
}
