package cmd

import (
	"fmt"
	"os"

	"github.com/pgdebus/scenewalk/internal/ingest"
	"github.com/pgdebus/scenewalk/internal/scene"
	"github.com/spf13/cobra"
)

var (
	scenePath     string
	sceneSelector string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenePath, "scene", "s", "", "Path to scene document (.json, .hcl, or .db snapshot)")
	rootCmd.PersistentFlags().StringVar(&sceneSelector, "select", "", "JSONPath selecting the scene root inside a larger JSON document")
}

var rootCmd = &cobra.Command{
	Use:           "scenewalk",
	Short:         "Search and inspect parented scene hierarchies",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadScene loads the graph named by the persistent --scene flag.
func loadScene() (*scene.Graph, error) {
	if scenePath == "" {
		return nil, fmt.Errorf("no scene document: pass --scene <file>")
	}
	if sceneSelector != "" {
		data, err := os.ReadFile(scenePath)
		if err != nil {
			return nil, fmt.Errorf("read scene %s: %w", scenePath, err)
		}
		return ingest.LoadJSONAt(data, sceneSelector)
	}
	return ingest.LoadFile(scenePath)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
