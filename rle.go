package fvoxel

import "encoding/binary"

// rlePair is one (run_length, voxel_id) record, serialized as two 32-bit
// little-endian words.
type rlePair struct {
	Run uint32
	ID  uint32
}

// EncodeRLE run-length-encodes a chunk's flat voxel-id array into a byte
// sequence of 8-byte (run, id) pairs. Empty runs are encoded like any
// other value — the sentinel is not special-cased.
func EncodeRLE(voxels []VoxelID) []byte {
	if len(voxels) == 0 {
		return nil
	}

	pairs := make([]rlePair, 0, len(voxels))
	pairs = append(pairs, rlePair{Run: 1, ID: uint32(voxels[0])})

	for i := 1; i < len(voxels); i++ {
		id := uint32(voxels[i])
		tail := &pairs[len(pairs)-1]
		if tail.ID == id {
			tail.Run++
			continue
		}
		pairs = append(pairs, rlePair{Run: 1, ID: id})
	}

	out := make([]byte, len(pairs)*8)
	for i, p := range pairs {
		binary.LittleEndian.PutUint32(out[i*8:], p.Run)
		binary.LittleEndian.PutUint32(out[i*8+4:], p.ID)
	}
	return out
}

// DecodeRLE expands an RLE payload into a buffer of exactly n voxel ids.
// The destination is zero-initialized to EmptyVoxel before decoding, so a
// short or corrupt payload leaves a well-defined empty tail rather than
// stale data. If the payload's total run length exceeds n, decoding clips
// at n and reports corruption.
func DecodeRLE(payload []byte, n int, logger Logger) ([]VoxelID, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	out := make([]VoxelID, n)
	for i := range out {
		out[i] = EmptyVoxel
	}

	if len(payload)%8 != 0 {
		logger.Errorf("rle: payload length %d is not a multiple of 8", len(payload))
		return out, ErrRegionCorrupt
	}

	written := 0
	for off := 0; off < len(payload); off += 8 {
		run := binary.LittleEndian.Uint32(payload[off:])
		id := VoxelID(binary.LittleEndian.Uint32(payload[off+4:]))

		for r := uint32(0); r < run; r++ {
			if written >= n {
				logger.Errorf("rle: decoded run length exceeds target size %d, clipping", n)
				return out, ErrRegionCorrupt
			}
			out[written] = id
			written++
		}
	}

	if written != n {
		logger.Errorf("rle: decoded %d voxels, expected %d", written, n)
		return out, ErrRegionCorrupt
	}

	return out, nil
}
