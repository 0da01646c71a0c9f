// Command fvoxelctl is a small operator CLI around the fVoxel library: it
// can create a world, inspect one on disk, and drive a scriptable
// spawn/fill/save smoke test.
package main

import (
	"fmt"
	"os"

	"github.com/Pain67/fVoxel/cmd/fvoxelctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
