package fvoxel

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/Pain67/fVoxel/internal/binio"
)

const (
	regionHeaderWordCount = 4
	regionEntryWordCount  = 6
	regionEntryByteSize   = regionEntryWordCount * 4
	regionHeaderByteSize  = regionHeaderWordCount * 4
)

// RegionEntry locates one chunk's RLE payload inside a region's data file.
type RegionEntry struct {
	PosX   int32
	PosZ   int32
	Offset int64
	Size   int64
}

// noEntry is the "none" sentinel index returned by FindEntry.
const noEntry = -1

// Region owns one region's header (entry list) and mediates every write
// against its data file. All mutations persist the header before touching
// the data file, per the append/overwrite ordering contract.
type Region struct {
	RX, RZ     int32
	EOFOffset  int64
	Entries    []RegionEntry
	headerPath string
	dataPath   string

	io     *binio.IO
	logger Logger
}

// newRegion constructs a region bound to the given header/data file paths.
// It does not touch disk; call LoadHeader to populate from an existing
// file.
func newRegion(rx, rz int32, headerPath, dataPath string, io *binio.IO, logger Logger) *Region {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Region{
		RX:         rx,
		RZ:         rz,
		headerPath: headerPath,
		dataPath:   dataPath,
		io:         io,
		logger:     logger,
	}
}

func regionPaths(regionsDir, headerFrag, dataFrag string, rx, rz int32) (header, data string) {
	header = filepath.Join(regionsDir, fmt.Sprintf("%s_%d_%d", headerFrag, rx, rz))
	data = filepath.Join(regionsDir, fmt.Sprintf("%s_%d_%d", dataFrag, rx, rz))
	return header, data
}

// LoadHeader reads and parses the header file if present, repopulating
// (RX, RZ, EOFOffset) and the entry list. If the header file does not
// exist, the region is treated as empty with EOFOffset 0 and no entries.
func (r *Region) LoadHeader() error {
	if !r.io.FileExists(r.headerPath) {
		r.RX, r.RZ = r.RX, r.RZ
		r.EOFOffset = 0
		r.Entries = nil
		return nil
	}

	raw, err := r.io.ReadAll(r.headerPath)
	if err != nil {
		return err
	}
	if len(raw) < regionHeaderByteSize {
		r.logger.Errorf("region %d,%d: header too short (%d bytes)", r.RX, r.RZ, len(raw))
		return ErrRegionCorrupt
	}
	if (len(raw)-regionHeaderByteSize)%regionEntryByteSize != 0 {
		r.logger.Errorf("region %d,%d: header size not a multiple of %d", r.RX, r.RZ, regionEntryByteSize)
		return ErrRegionCorrupt
	}

	rx := int32(binary.LittleEndian.Uint32(raw[0:4]))
	rz := int32(binary.LittleEndian.Uint32(raw[4:8]))
	eofHi := binary.LittleEndian.Uint32(raw[8:12])
	eofLo := binary.LittleEndian.Uint32(raw[12:16])
	eof := int64(uint64(eofHi)<<32 | uint64(eofLo))

	entryCount := (len(raw) - regionHeaderByteSize) / regionEntryByteSize
	entries := make([]RegionEntry, 0, entryCount)
	for i := 0; i < entryCount; i++ {
		base := regionHeaderByteSize + i*regionEntryByteSize
		posX := int32(binary.LittleEndian.Uint32(raw[base : base+4]))
		posZ := int32(binary.LittleEndian.Uint32(raw[base+4 : base+8]))
		offHi := binary.LittleEndian.Uint32(raw[base+8 : base+12])
		offLo := binary.LittleEndian.Uint32(raw[base+12 : base+16])
		sizeHi := binary.LittleEndian.Uint32(raw[base+16 : base+20])
		sizeLo := binary.LittleEndian.Uint32(raw[base+20 : base+24])
		entries = append(entries, RegionEntry{
			PosX:   posX,
			PosZ:   posZ,
			Offset: int64(uint64(offHi)<<32 | uint64(offLo)),
			Size:   int64(uint64(sizeHi)<<32 | uint64(sizeLo)),
		})
	}

	r.RX, r.RZ, r.EOFOffset, r.Entries = rx, rz, eof, entries
	return nil
}

// SaveHeader serializes the current header and truncate-writes it to the
// header file path.
func (r *Region) SaveHeader() error {
	buf := make([]byte, regionHeaderByteSize+len(r.Entries)*regionEntryByteSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.RX))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(r.RZ))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(uint64(r.EOFOffset)>>32))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(uint64(r.EOFOffset)))

	for i, e := range r.Entries {
		base := regionHeaderByteSize + i*regionEntryByteSize
		binary.LittleEndian.PutUint32(buf[base:base+4], uint32(e.PosX))
		binary.LittleEndian.PutUint32(buf[base+4:base+8], uint32(e.PosZ))
		binary.LittleEndian.PutUint32(buf[base+8:base+12], uint32(uint64(e.Offset)>>32))
		binary.LittleEndian.PutUint32(buf[base+12:base+16], uint32(uint64(e.Offset)))
		binary.LittleEndian.PutUint32(buf[base+16:base+20], uint32(uint64(e.Size)>>32))
		binary.LittleEndian.PutUint32(buf[base+20:base+24], uint32(uint64(e.Size)))
	}

	return r.io.WriteAll(r.headerPath, buf)
}

// FindEntry returns the index of the entry for (px, pz), or noEntry if
// there is none.
func (r *Region) FindEntry(px, pz int32) int {
	for i, e := range r.Entries {
		if e.PosX == px && e.PosZ == pz {
			return i
		}
	}
	return noEntry
}

// SaveNewEntry appends a new entry for (px, pz) holding payload, persists
// the header, and appends the payload to the data file. It returns the new
// entry's index.
func (r *Region) SaveNewEntry(px, pz int32, payload []byte) (int, error) {
	entry := RegionEntry{PosX: px, PosZ: pz, Offset: r.EOFOffset, Size: int64(len(payload))}
	r.Entries = append(r.Entries, entry)
	r.EOFOffset += entry.Size

	if err := r.SaveHeader(); err != nil {
		return noEntry, err
	}
	if !r.io.FileExists(r.dataPath) {
		if err := r.io.CreateEmpty(r.dataPath); err != nil {
			return noEntry, err
		}
	}
	if err := r.io.AppendAt(r.dataPath, payload, binio.SentinelOffset); err != nil {
		return noEntry, err
	}
	return len(r.Entries) - 1, nil
}

// OverwriteEntry replaces the payload stored at entry index i, shifting
// every later entry's offset by the size delta, then rewrites the data
// file as before ++ new payload ++ after around the old payload's byte
// range.
func (r *Region) OverwriteEntry(i int, payload []byte) error {
	if i < 0 || i >= len(r.Entries) {
		return ErrEntryNotFound
	}

	oldSize := r.Entries[i].Size
	oldOffset := r.Entries[i].Offset
	delta := int64(len(payload)) - oldSize

	r.Entries[i].Size = int64(len(payload))
	for j := i + 1; j < len(r.Entries); j++ {
		r.Entries[j].Offset += delta
	}
	r.EOFOffset += delta

	if err := r.SaveHeader(); err != nil {
		return err
	}

	before, after, err := r.io.ReadWithHole(r.dataPath, oldOffset, oldSize)
	if err != nil {
		r.logger.Errorf("region %d,%d: overwrite entry %d left data file inconsistent: %v", r.RX, r.RZ, i, err)
		return err
	}

	final := make([]byte, 0, len(before)+len(payload)+len(after))
	final = append(final, before...)
	final = append(final, payload...)
	final = append(final, after...)

	return r.io.WriteAll(r.dataPath, final)
}

// LoadEntry reads entry i's payload from the data file.
func (r *Region) LoadEntry(i int) ([]byte, error) {
	if i < 0 || i >= len(r.Entries) {
		return nil, ErrEntryNotFound
	}
	e := r.Entries[i]
	return r.io.ReadAt(r.dataPath, int(e.Size), e.Offset)
}

// Stats reports the current entry count and end-of-file offset.
func (r *Region) Stats() (entryCount int, eofOffset int64) {
	return len(r.Entries), r.EOFOffset
}
