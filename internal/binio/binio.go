// Package binio implements the library's binary I/O primitives: existence
// tests, truncating writes, positioned append/overwrite, full-file reads,
// and a "read with a hole" primitive used by the region store's in-place
// rewrite path. Every primitive serializes through a single instance-scoped
// lock, mirroring the original fVoxel source's IO_Lock member.
package binio

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// SentinelOffset marks "no explicit offset": AppendAt appends at end of
// file, ReadAt reads from the start of the file.
const SentinelOffset int64 = -1

// Logger is the minimal logging facade binio needs. fvoxel.Logger satisfies
// it structurally.
type Logger interface {
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Errorf(format string, args ...any) {}

// IO bundles the raw file primitives behind one mutex, so concurrent
// callers never interleave partial reads/writes against the same or
// different region files.
type IO struct {
	mu     sync.Mutex
	logger Logger
}

// New builds an IO primitive set. A nil logger is replaced with a no-op.
func New(logger Logger) *IO {
	if logger == nil {
		logger = nopLogger{}
	}
	return &IO{logger: logger}
}

// FileExists is a pure existence test.
func (b *IO) FileExists(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := os.Stat(path)
	return err == nil
}

// CreateEmpty creates (truncating if needed) a zero-length file.
func (b *IO) CreateEmpty(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		b.logger.Errorf("create %s: %v", path, err)
		return fmt.Errorf("binio: create %s: %w", path, err)
	}
	return f.Close()
}

// WriteAll performs a truncating write of the full buffer.
func (b *IO) WriteAll(path string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.logger.Errorf("write_all %s: %v", path, err)
		return fmt.Errorf("binio: write_all %s: %w", path, err)
	}
	return nil
}

// AppendAt opens the file for read+write. If offset is SentinelOffset, the
// data is appended at the current end of file; otherwise the write starts
// at offset, overwriting any bytes already there. The call fails if
// 0 <= offset <= file_size does not hold.
func (b *IO) AppendAt(path string, data []byte, offset int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		b.logger.Errorf("append_at open %s: %v", path, err)
		return fmt.Errorf("binio: append_at open %s: %w", path, err)
	}
	defer f.Close()

	if offset == SentinelOffset {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			b.logger.Errorf("append_at seek-end %s: %v", path, err)
			return fmt.Errorf("binio: append_at seek-end %s: %w", path, err)
		}
	} else {
		info, err := f.Stat()
		if err != nil {
			b.logger.Errorf("append_at stat %s: %v", path, err)
			return fmt.Errorf("binio: append_at stat %s: %w", path, err)
		}
		if offset < 0 || offset > info.Size() {
			b.logger.Errorf("append_at %s: offset %d out of bounds (size %d)", path, offset, info.Size())
			return fmt.Errorf("binio: append_at %s: offset %d out of bounds (size %d)", path, offset, info.Size())
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			b.logger.Errorf("append_at seek %s: %v", path, err)
			return fmt.Errorf("binio: append_at seek %s: %w", path, err)
		}
	}

	if _, err := f.Write(data); err != nil {
		b.logger.Errorf("append_at write %s: %v", path, err)
		return fmt.Errorf("binio: append_at write %s: %w", path, err)
	}
	return nil
}

// ReadAt reads exactly size bytes at offset (or from position 0 if offset
// is SentinelOffset). It fails if fewer bytes are available.
func (b *IO) ReadAt(path string, size int, offset int64) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		b.logger.Errorf("read_at open %s: %v", path, err)
		return nil, fmt.Errorf("binio: read_at open %s: %w", path, err)
	}
	defer f.Close()

	if offset == SentinelOffset {
		offset = 0
	}

	buf := make([]byte, size)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		b.logger.Errorf("read_at %s: %v", path, err)
		return nil, fmt.Errorf("binio: read_at %s: %w", path, err)
	}
	if n < size {
		b.logger.Errorf("read_at %s: short read, got %d want %d", path, n, size)
		return nil, fmt.Errorf("binio: read_at %s: short read, got %d want %d", path, n, size)
	}
	return buf, nil
}

// ReadAll allocates and returns the file's full contents.
func (b *IO) ReadAll(path string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		b.logger.Errorf("read_all %s: %v", path, err)
		return nil, fmt.Errorf("binio: read_all %s: %w", path, err)
	}
	return data, nil
}

// ReadWithHole returns the bytes before [0, holeOffset) and after
// [holeOffset+holeSize, file_size) a specified byte range. Either slice may
// be empty.
func (b *IO) ReadWithHole(path string, holeOffset, holeSize int64) (before, after []byte, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		b.logger.Errorf("read_with_hole open %s: %v", path, err)
		return nil, nil, fmt.Errorf("binio: read_with_hole open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		b.logger.Errorf("read_with_hole stat %s: %v", path, err)
		return nil, nil, fmt.Errorf("binio: read_with_hole stat %s: %w", path, err)
	}
	size := info.Size()

	before = make([]byte, holeOffset)
	if holeOffset > 0 {
		if _, err := f.ReadAt(before, 0); err != nil && err != io.EOF {
			b.logger.Errorf("read_with_hole before %s: %v", path, err)
			return nil, nil, fmt.Errorf("binio: read_with_hole before %s: %w", path, err)
		}
	}

	afterOffset := holeOffset + holeSize
	afterSize := size - afterOffset
	if afterSize < 0 {
		afterSize = 0
	}
	after = make([]byte, afterSize)
	if afterSize > 0 {
		if _, err := f.ReadAt(after, afterOffset); err != nil && err != io.EOF {
			b.logger.Errorf("read_with_hole after %s: %v", path, err)
			return nil, nil, fmt.Errorf("binio: read_with_hole after %s: %w", path, err)
		}
	}

	return before, after, nil
}
