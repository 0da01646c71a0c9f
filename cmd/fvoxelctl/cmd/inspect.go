package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pain67/fVoxel"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Print summary information about an existing world",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		path := args[0]

		w := fvoxel.NewWorld()
		registerer, shutdown := startMetricsServer()
		defer shutdown()
		w.SetMetricsRegisterer(registerer)

		if !w.IsWorldExist(path) {
			return fmt.Errorf("no world found at %s", path)
		}

		propsFile := filepath.Join(path, "World", "fVoxel")
		if err := w.LoadWorld(propsFile); err != nil {
			return fmt.Errorf("load world at %s: %w", path, err)
		}

		cx, cy, cz := w.GetChunkSize()
		fmt.Printf("world at %s\n", path)
		fmt.Printf("  chunk size:  %d x %d x %d\n", cx, cy, cz)

		regionsDir := filepath.Join(path, "World", "Regions")
		if entries, err := os.ReadDir(regionsDir); err == nil {
			headers := 0
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), "RegionHeader_") {
					headers++
				}
			}
			fmt.Printf("  regions on disk: %d\n", headers)
		}

		w.UnloadWorld()
		return nil
	},
}
