package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Pain67/fVoxel"
)

var (
	initChunkSize [3]int32
	initRegion    [2]int32
	initWorld     [2]int32
	initForce     bool
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new world on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		path := args[0]

		chunkX := viperInt32Default("chunk-size-x", initChunkSize[0])
		chunkY := viperInt32Default("chunk-size-y", initChunkSize[1])
		chunkZ := viperInt32Default("chunk-size-z", initChunkSize[2])
		regionX := viperInt32Default("region-size", initRegion[0])
		regionZ := viperInt32Default("region-size-z", initRegion[1])
		worldX := viperInt32Default("world-size", initWorld[0])
		worldZ := viperInt32Default("world-size-z", initWorld[1])

		w := fvoxel.NewWorld()
		registerer, shutdown := startMetricsServer()
		defer shutdown()
		w.SetMetricsRegisterer(registerer)

		if err := w.SetChunkVoxelSize(chunkX, chunkY, chunkZ); err != nil {
			return fmt.Errorf("chunk size: %w", err)
		}
		if err := w.SetRegionSize(regionX, regionZ); err != nil {
			return fmt.Errorf("region size: %w", err)
		}
		if err := w.SetWorldSize(worldX, worldZ); err != nil {
			return fmt.Errorf("world size: %w", err)
		}

		if err := w.CreateWorld(path, initForce); err != nil {
			return fmt.Errorf("create world at %s: %w", path, err)
		}

		fmt.Printf("created world at %s (chunk=%dx%dx%d region=%dx%d world=%dx%d)\n",
			path, chunkX, chunkY, chunkZ, regionX, regionZ, worldX, worldZ)
		return nil
	},
}

func viperInt32Default(key string, flagValue int32) int32 {
	if viper.IsSet(key) {
		return int32(viper.GetInt(key))
	}
	return flagValue
}

func init() {
	initCmd.Flags().Int32Var(&initChunkSize[0], "chunk-size-x", 16, "chunk voxel width")
	initCmd.Flags().Int32Var(&initChunkSize[1], "chunk-size-y", 16, "chunk voxel height")
	initCmd.Flags().Int32Var(&initChunkSize[2], "chunk-size-z", 16, "chunk voxel depth")
	initCmd.Flags().Int32Var(&initRegion[0], "region-size", 16, "chunks per region edge (X)")
	initCmd.Flags().Int32Var(&initRegion[1], "region-size-z", 16, "chunks per region edge (Z)")
	initCmd.Flags().Int32Var(&initWorld[0], "world-size", 16, "chunk-slot pool width (X)")
	initCmd.Flags().Int32Var(&initWorld[1], "world-size-z", 16, "chunk-slot pool depth (Z)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "accepted for API parity with create_world(path, force); currently has no effect (see DESIGN.md)")
}
