package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryMagic starts every file written by FileCache. It is followed by the
// expiry as big-endian Unix nanoseconds (zero for none) and the raw data.
var entryMagic = []byte("AWC1")

const entryHeader = 4 + 8

// FileCache stores one file per entry under dir, fanned out into 256
// subdirectories by key hash. Raster outputs are stored as-is, not encoded.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (and creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired and unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	data, expires, ok := decodeEntry(raw)
	if !ok || c.expired(expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set writes the entry through a temporary file so readers never see a
// partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	var hdr [entryHeader]byte
	copy(hdr[:], entryMagic)
	binary.BigEndian.PutUint64(hdr[4:], uint64(expires))
	if _, err := tmp.Write(hdr[:]); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key, if any.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func([]byte) bool { return true })
}

// Prune removes expired and unreadable entries and returns how many were
// removed.
func (c *FileCache) Prune() (int, error) {
	return c.sweep(func(raw []byte) bool {
		_, expires, ok := decodeEntry(raw)
		return !ok || c.expired(expires)
	})
}

// sweep removes each entry file for which drop returns true.
func (c *FileCache) sweep(drop func(raw []byte) bool) (int, error) {
	n := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if drop(raw) && os.Remove(path) == nil {
			n++
		}
		return nil
	})
	return n, err
}

func (c *FileCache) expired(expires int64) bool {
	return expires != 0 && c.now().UnixNano() > expires
}

func decodeEntry(raw []byte) (data []byte, expires int64, ok bool) {
	if len(raw) < entryHeader || !bytes.Equal(raw[:4], entryMagic) {
		return nil, 0, false
	}
	return raw[entryHeader:], int64(binary.BigEndian.Uint64(raw[4:entryHeader])), true
}

// path maps key to dir/<first two hash chars>/<rest of hash>.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

var _ Cache = (*FileCache)(nil)
