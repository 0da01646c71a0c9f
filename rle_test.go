package fvoxel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRLE_SingleRun(t *testing.T) {
	buf := []VoxelID{5, 5, 5, 5}
	encoded := EncodeRLE(buf)
	assert.Equal(t, 8, len(encoded)) // one pair: (run=4, id=5)

	decoded, err := DecodeRLE(encoded, len(buf), nil)
	require.NoError(t, err)
	assert.Equal(t, buf, decoded)
}

func TestEncodeRLE_AlternatingRuns(t *testing.T) {
	buf := []VoxelID{EmptyVoxel, EmptyVoxel, 1, 1, 1, EmptyVoxel}
	encoded := EncodeRLE(buf)
	assert.Equal(t, 3*8, len(encoded)) // three pairs

	decoded, err := DecodeRLE(encoded, len(buf), nil)
	require.NoError(t, err)
	assert.Equal(t, buf, decoded)
}

// TestRLE_RoundTrip is scenario S3: a randomized buffer of 64 ids drawn
// from {EMPTY, 0, 1} round-trips exactly, and the encoded size never
// exceeds the worst case of one pair per voxel.
func TestRLE_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	choices := []VoxelID{EmptyVoxel, 0, 1}

	for trial := 0; trial < 20; trial++ {
		buf := make([]VoxelID, 64)
		for i := range buf {
			buf[i] = choices[rng.Intn(len(choices))]
		}

		encoded := EncodeRLE(buf)
		assert.LessOrEqual(t, len(encoded), 64*8)

		decoded, err := DecodeRLE(encoded, len(buf), nil)
		require.NoError(t, err)
		assert.Equal(t, buf, decoded)
	}
}

func TestDecodeRLE_ShortPayloadZeroesTail(t *testing.T) {
	// One pair covering only 2 of 4 voxels; the decoder must still
	// produce a full-length buffer with the tail set to EmptyVoxel.
	encoded := EncodeRLE([]VoxelID{7, 7})
	decoded, err := DecodeRLE(encoded, 4, nil)
	require.Error(t, err)
	assert.Equal(t, []VoxelID{7, 7, EmptyVoxel, EmptyVoxel}, decoded)
}

func TestDecodeRLE_OverlongPayloadClips(t *testing.T) {
	encoded := EncodeRLE([]VoxelID{1, 1, 1, 1})
	decoded, err := DecodeRLE(encoded, 2, nil)
	require.Error(t, err)
	assert.Equal(t, []VoxelID{1, 1}, decoded)
}

func TestDecodeRLE_MalformedLength(t *testing.T) {
	_, err := DecodeRLE([]byte{1, 2, 3}, 1, nil)
	require.ErrorIs(t, err, ErrRegionCorrupt)
}
