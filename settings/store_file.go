package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// FileStore persists settings as a flat text file with one "key=value"
// entry per line. A single mutex serializes every operation, reads
// included; the store is safe for concurrent use.
type FileStore struct {
	mu               sync.Mutex
	settings         map[string]string
	currentFile      string
	retargetOnSaveAs bool
}

// NewFileStore initiates a new, empty file store. It is not bound to
// any file until Load succeeds.
func NewFileStore(opts ...StoreOption) *FileStore {
	s := &FileStore{settings: map[string]string{}}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// EnsureFileExists creates an empty file at path if none exists.
// An existing file is left untouched.
func (s *FileStore) EnsureFileExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat settings file %q: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("create settings file %q: %w", path, err)
	}

	return file.Close()
}

// Load reads the file at path line by line. A line is split on its
// first "=" into key and value; the value keeps any further "="
// characters and surrounding whitespace verbatim. Lines without "="
// are skipped, the last occurrence of a duplicate key wins. Only after
// the whole file has been read without error are the in-memory entries
// replaced and the store bound to path.
func (s *FileStore) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(path)
}

// Reload re-reads the file the store is bound to.
func (s *FileStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentFile == "" {
		return ErrNoFileLoaded
	}

	return s.load(s.currentFile)
}

// load must be called with the mutex held.
func (s *FileStore) load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open settings file %q: %w", path, err)
	}
	defer file.Close()

	parsed := map[string]string{}

	// Lines are read with ReadString rather than a Scanner: values have
	// no length limit, and everything between "=" and the newline is
	// kept literally, carriage returns included.
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')

		parts := strings.SplitN(strings.TrimSuffix(line, "\n"), "=", 2)
		if len(parts) == 2 {
			parsed[parts[0]] = parts[1]
		}
		// A line without "=" is not a key=value line and is skipped

		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read settings file %q: %w", path, err)
		}
	}

	s.settings = parsed
	s.currentFile = path

	return nil
}

// Get returns the raw string value for key.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.settings[key]
	if !ok {
		return "", &KeyNotFoundError{Key: key}
	}

	return value, nil
}

// Set inserts or overwrites the entry for key. The key and value are
// taken as-is, no validation.
func (s *FileStore) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
}

// Settings returns a copy of all current entries.
func (s *FileStore) Settings() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]string, len(s.settings))
	for key, value := range s.settings {
		result[key] = value
	}

	return result
}

// Save persists all entries to the file the store is bound to.
// It returns ErrNoFileLoaded when Load has never succeeded.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentFile == "" {
		return ErrNoFileLoaded
	}

	return s.write(s.currentFile)
}

// SaveAs persists all entries to path, truncating any previous
// content. By default the store stays bound to the file last loaded,
// so a following Save still targets that file; see WithRetargetOnSaveAs.
func (s *FileStore) SaveAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(path); err != nil {
		return err
	}

	if s.retargetOnSaveAs {
		s.currentFile = path
	}

	return nil
}

// write must be called with the mutex held. Entries are written in key
// order so the output is deterministic.
func (s *FileStore) write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open settings file %q for writing: %w", path, err)
	}

	keys := make([]string, 0, len(s.settings))
	for key := range s.settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(file)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, s.settings[key]); err != nil {
			file.Close()
			return fmt.Errorf("write settings file %q: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write settings file %q: %w", path, err)
	}

	return file.Close()
}
