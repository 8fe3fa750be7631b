package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bassista/rpi_configurator/internal/logger"
	"github.com/sirupsen/logrus"
)

// Separator splits section paths such as "ServiceMonitor/Services".
const Separator = "/"

// ErrNotObject is returned when the settings file holds valid JSON that is not an object.
var ErrNotObject = errors.New("settings document is not a JSON object")

// Store is a JSON-backed key/value settings document with array sections.
// Keys are '/'-separated paths into nested JSON objects. An array section is entered
// with BeginReadArray or BeginWriteArray; while it is open, Value and SetValue address
// fields of the element selected by SetArrayIndex.
// A Store is not safe for concurrent use.
type Store struct {
	path string
	dir  string
	base string
	doc  map[string]any

	arrayPath  string
	array      []any
	arrayIndex int
	inArray    bool
	writing    bool

	log *logrus.Entry
}

// Open loads the settings document at path.
// A missing or empty file yields an empty document; it is created on the first Sync.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("settings file path is required")
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}

	s := &Store{
		path: path,
		dir:  dir,
		base: filepath.Base(path),
		doc:  map[string]any{},
		log:  logger.WithComponent("settings").WithField("file", path),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("settings file does not exist, starting empty")
			return s, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	// Numbers stay json.Number so integers outside float64 precision survive a rewrite.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode settings file: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode settings file: trailing data after document")
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	s.doc = doc

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// BeginReadArray enters the array section at path and returns its element count.
// A missing section, or a value that is not an array, counts as empty.
func (s *Store) BeginReadArray(path string) int {
	s.EndArray()

	arr, _ := lookup(s.doc, path).([]any)
	s.arrayPath = path
	s.array = arr
	s.arrayIndex = -1
	s.inArray = true
	s.writing = false

	return len(arr)
}

// BeginWriteArray enters the array section at path for writing.
// The section is truncated: only the elements written before EndArray or Sync survive.
func (s *Store) BeginWriteArray(path string) {
	s.EndArray()

	s.arrayPath = path
	s.array = []any{}
	s.arrayIndex = -1
	s.inArray = true
	s.writing = true
	assign(s.doc, path, s.array)
}

// SetArrayIndex selects the element addressed by subsequent Value and SetValue calls.
// In write mode the array grows to hold index.
func (s *Store) SetArrayIndex(index int) {
	if !s.inArray || index < 0 {
		s.log.Debugf("ignoring array index %d outside of an array section", index)
		return
	}
	s.arrayIndex = index

	if !s.writing {
		return
	}
	for len(s.array) <= index {
		s.array = append(s.array, map[string]any{})
	}
	assign(s.doc, s.arrayPath, s.array)
}

// EndArray leaves the current array section, if any.
func (s *Store) EndArray() {
	if s.inArray && s.writing {
		assign(s.doc, s.arrayPath, s.array)
	}
	s.arrayPath = ""
	s.array = nil
	s.arrayIndex = -1
	s.inArray = false
	s.writing = false
}

// Value reads key from the selected array element, or from the document root
// when no array section is open. Missing keys yield a nil Variant.
func (s *Store) Value(key string) Variant {
	if !s.inArray {
		return Variant{v: lookup(s.doc, key)}
	}

	elem := s.element()
	if elem == nil {
		return Variant{}
	}
	return Variant{v: lookup(elem, key)}
}

// SetValue writes key on the selected array element, or on the document root
// when no array section is open.
func (s *Store) SetValue(key string, value any) {
	if !s.inArray {
		assign(s.doc, key, value)
		return
	}

	elem := s.element()
	if elem == nil {
		s.log.Debugf("ignoring value %q: no array element selected", key)
		return
	}
	assign(elem, key, value)
}

// Sync writes the document atomically to disk.
func (s *Store) Sync() error {
	if s.inArray && s.writing {
		assign(s.doc, s.arrayPath, s.array)
	}

	payload, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	payload = append(payload, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, s.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	s.log.Debugf("settings written (%d bytes)", len(payload))
	return nil
}

// element returns the selected array element as an object.
// Non-object elements are replaced by an empty object in write mode.
func (s *Store) element() map[string]any {
	if s.arrayIndex < 0 || s.arrayIndex >= len(s.array) {
		return nil
	}
	if m, ok := s.array[s.arrayIndex].(map[string]any); ok {
		return m
	}
	if !s.writing {
		return nil
	}
	m := map[string]any{}
	s.array[s.arrayIndex] = m
	return m
}

func splitPath(path string) []string {
	parts := strings.Split(path, Separator)
	keys := parts[:0]
	for _, p := range parts {
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// lookup walks path through nested objects and returns the value found, or nil.
func lookup(root map[string]any, path string) any {
	keys := splitPath(path)
	if len(keys) == 0 {
		return nil
	}

	current := root
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current[keys[len(keys)-1]]
}

// assign sets path to value, creating (or replacing non-object) intermediate nodes.
func assign(root map[string]any, path string, value any) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return
	}

	current := root
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[k] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}
