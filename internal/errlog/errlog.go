package errlog

import (
	"fmt"
	"os"
	"sync"
)

// Sink is an append-only log of not-found events, one tab-separated
// line per event. The file is created lazily on the first Record, so a
// clean run leaves no log behind.
type Sink struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// New returns a Sink writing to the file at path.
func New(path string) *Sink {
	return &Sink{path: path}
}

// Path returns the location of the log file.
func (s *Sink) Path() string {
	return s.path
}

// Reset removes any log left over from a previous run. Safe to call
// when no log exists.
func (s *Sink) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f != nil {
		s.f.Close()
		s.f = nil
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("errlog: reset: %w", err)
	}
	return nil
}

// Record appends one "{context}\t{url}" line. Each call writes the
// whole line in a single write under the lock, so concurrent workers
// never interleave output.
func (s *Sink) Record(context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("errlog: open: %w", err)
		}
		s.f = f
	}

	if _, err := fmt.Fprintf(s.f, "%s\t%s\n", context, url); err != nil {
		return fmt.Errorf("errlog: write: %w", err)
	}
	return nil
}

// Close releases the underlying file, if one was created.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
