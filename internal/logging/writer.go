package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// rotatingFile is an io.WriteCloser that rotates its backing file once a
// write would cross sizeLimit bytes, keeping at most keepGenerations
// rotated copies (path.1 is the newest rotation, path.keepGenerations the
// oldest; anything beyond that is deleted). Unlike a live-tailed log file,
// nothing here needs to be durable on every write, so fsync only happens
// around rotation and on Close, not after every Write.
type rotatingFile struct {
	path            string
	sizeLimit       int64
	keepGenerations int

	mu      sync.Mutex
	f       *os.File
	written int64
}

// openRotatingFile opens (creating if necessary) path for append, ready to
// rotate once sizeLimit (derived from maxSizeMB) is crossed.
func openRotatingFile(path string, maxSizeMB, keepGenerations int) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}

	rf := &rotatingFile{
		path:            path,
		sizeLimit:       int64(maxSizeMB) * 1024 * 1024,
		keepGenerations: keepGenerations,
	}
	if err := rf.reopen(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.written+int64(len(p)) > rf.sizeLimit {
		if err := rf.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "logging: rotation of %s failed: %v\n", rf.path, err)
		}
	}

	n, err := rf.f.Write(p)
	rf.written += int64(n)
	return n, err
}

func (rf *rotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.f == nil {
		return nil
	}
	_ = rf.f.Sync()
	return rf.f.Close()
}

func (rf *rotatingFile) reopen() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open %s: %w", rf.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("logging: stat %s: %w", rf.path, err)
	}
	rf.f = f
	rf.written = info.Size()
	return nil
}

// rotate closes the current file, shifts every existing generation up by
// one (dropping whatever falls past keepGenerations), moves the current
// file to generation 1, and opens a fresh one in its place.
func (rf *rotatingFile) rotate() error {
	if rf.f != nil {
		if err := rf.f.Sync(); err != nil {
			return fmt.Errorf("logging: sync %s before rotation: %w", rf.path, err)
		}
		if err := rf.f.Close(); err != nil {
			return fmt.Errorf("logging: close %s before rotation: %w", rf.path, err)
		}
		rf.f = nil
	}

	for _, gen := range rf.existingGenerations() {
		switch {
		case gen.n >= rf.keepGenerations:
			_ = os.Remove(gen.path)
		default:
			_ = os.Rename(gen.path, rf.generationPath(gen.n+1))
		}
	}

	if _, err := os.Stat(rf.path); err == nil {
		if err := os.Rename(rf.path, rf.generationPath(1)); err != nil {
			return fmt.Errorf("logging: rotate %s: %w", rf.path, err)
		}
	}

	rf.written = 0
	return rf.reopen()
}

type generation struct {
	path string
	n    int
}

// existingGenerations lists path.1, path.2, ... in descending generation
// order, so rotate() can shift them without a higher generation clobbering
// a lower one it hasn't been moved out of yet.
func (rf *rotatingFile) existingGenerations() []generation {
	base := filepath.Base(rf.path)
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(rf.path), base+".*"))
	if err != nil {
		return nil
	}

	gens := make([]generation, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(m), base+"."))
		if err != nil {
			continue
		}
		gens = append(gens, generation{path: m, n: n})
	}
	sort.Slice(gens, func(i, j int) bool { return gens[i].n > gens[j].n })
	return gens
}

func (rf *rotatingFile) generationPath(n int) string {
	return fmt.Sprintf("%s.%d", rf.path, n)
}
