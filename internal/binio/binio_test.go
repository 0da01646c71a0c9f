package binio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	io := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "f")

	require.False(t, io.FileExists(path))
	require.NoError(t, io.CreateEmpty(path))
	require.True(t, io.FileExists(path))
}

func TestWriteAllReadAll(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")

	require.NoError(t, io.WriteAll(path, []byte("hello")))
	data, err := io.ReadAll(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	// A second truncating write fully replaces the prior contents.
	require.NoError(t, io.WriteAll(path, []byte("hi")))
	data, err = io.ReadAll(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), data)
}

func TestAppendAt_SentinelAppendsAtEnd(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")

	require.NoError(t, io.WriteAll(path, []byte("abc")))
	require.NoError(t, io.AppendAt(path, []byte("def"), SentinelOffset))

	data, err := io.ReadAll(path)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), data)
}

func TestAppendAt_OverwritesInPlace(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")

	require.NoError(t, io.WriteAll(path, []byte("abcdef")))
	require.NoError(t, io.AppendAt(path, []byte("XY"), 2))

	data, err := io.ReadAll(path)
	require.NoError(t, err)
	require.Equal(t, []byte("abXYef"), data)
}

func TestAppendAt_OutOfBoundsOffsetFails(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, io.WriteAll(path, []byte("abc")))

	err := io.AppendAt(path, []byte("x"), 10)
	require.Error(t, err)
}

func TestReadAt_ShortReadFails(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, io.WriteAll(path, []byte("abc")))

	_, err := io.ReadAt(path, 10, 0)
	require.Error(t, err)
}

func TestReadWithHole(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, io.WriteAll(path, []byte("0123456789")))

	before, after, err := io.ReadWithHole(path, 3, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("012"), before)
	require.Equal(t, []byte("789"), after)
}

func TestReadWithHole_HoleAtEnd(t *testing.T) {
	io := New(nil)
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, io.WriteAll(path, []byte("01234")))

	before, after, err := io.ReadWithHole(path, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("01"), before)
	require.Empty(t, after)
}
