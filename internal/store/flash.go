// Package store keeps the user string across power cycles in a file laid
// out like a single erased-to-0xFF flash page.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	// PageSize is the size of the emulated page.
	PageSize = 256
	erased   = 0xFF
)

var magic = []byte("DBG1")

// MaxLen is the longest string a page holds.
const MaxLen = PageSize - 4 - 1

var (
	// ErrBlank is returned when the page has never been written.
	ErrBlank = errors.New("store: page is blank")
	// ErrCorrupt is returned when the page holds something unrecognised.
	ErrCorrupt = errors.New("store: page is corrupt")
	// ErrTooLong is returned when a string does not fit the page.
	ErrTooLong = errors.New("store: string does not fit page")
)

// Flash is a page file. Methods are safe for concurrent use.
type Flash struct {
	mu   sync.Mutex
	path string
}

// Open returns a store backed by path. The file need not exist yet; its
// directory must.
func Open(path string) (*Flash, error) {
	dir := filepath.Dir(path)
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("store: %s is not a directory", dir)
	}
	return &Flash{path: path}, nil
}

func (f *Flash) Path() string { return f.path }

// ReadString returns the stored string, cut to at most capacity bytes.
func (f *Flash) ReadString(capacity int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrBlank
	}
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", f.path, err)
	}
	if isErased(page) {
		return "", ErrBlank
	}
	if len(page) != PageSize || !bytes.HasPrefix(page, magic) {
		return "", ErrCorrupt
	}
	body := page[len(magic):]
	end := bytes.IndexByte(body, 0)
	if end < 0 {
		return "", ErrCorrupt
	}
	s := body[:end]
	if capacity >= 0 && len(s) > capacity {
		s = s[:capacity]
	}
	return string(s), nil
}

// WriteString erases the page and programs s into it. The previous
// contents survive a failed write.
func (f *Flash) WriteString(s string) error {
	if len(s) > MaxLen {
		return ErrTooLong
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return fmt.Errorf("store: string contains NUL")
	}
	page := bytes.Repeat([]byte{erased}, PageSize)
	n := copy(page, magic)
	n += copy(page[n:], s)
	page[n] = 0

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".page-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(page); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", f.path, err)
	}
	return nil
}

// Erase resets the page to blank.
func (f *Flash) Erase() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase: %w", err)
	}
	return nil
}

func isErased(b []byte) bool {
	for _, v := range b {
		if v != erased {
			return false
		}
	}
	return true
}
