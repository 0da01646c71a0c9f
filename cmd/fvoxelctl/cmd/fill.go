package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Pain67/fVoxel"
)

var fillCmd = &cobra.Command{
	Use:   "fill <path> <cx> <cz> <voxel-id>",
	Short: "Spawn a chunk, fill it solid with one voxel id, and save it",
	Args:  cobra.ExactArgs(4),
	RunE: func(c *cobra.Command, args []string) error {
		path := args[0]
		cx, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("cx: %w", err)
		}
		cz, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("cz: %w", err)
		}
		voxelID, err := strconv.ParseUint(args[3], 10, 32)
		if err != nil {
			return fmt.Errorf("voxel-id: %w", err)
		}

		w := fvoxel.NewWorld()
		registerer, shutdown := startMetricsServer()
		defer shutdown()
		w.SetMetricsRegisterer(registerer)

		propsFile := filepath.Join(path, "World", "fVoxel")
		if err := w.LoadWorld(propsFile); err != nil {
			return fmt.Errorf("load world at %s: %w", path, err)
		}
		defer w.UnloadWorld()

		slot, err := w.SpawnChunk(int32(cx), int32(cz))
		if err != nil {
			return fmt.Errorf("spawn chunk (%d,%d): %w", cx, cz, err)
		}

		chunk, err := w.GetChunkPtr(slot)
		if err != nil {
			return err
		}
		for i := range chunk.Voxels {
			chunk.Voxels[i] = fvoxel.VoxelID(voxelID)
		}
		chunk.Modified = true

		if err := w.SaveChunk(slot); err != nil {
			return fmt.Errorf("save chunk (%d,%d): %w", cx, cz, err)
		}

		fmt.Printf("filled chunk (%d,%d) with voxel id %d and saved\n", cx, cz, voxelID)
		return nil
	},
}
