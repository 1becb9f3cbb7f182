// Package patternlib is the JSON-backed pattern.Library: patterns are
// stored keyed by library key in a single JSON document, loaded fully
// into memory, and indexed both by key and by fingerprint for O(1)
// lookup in either direction.
//
// Grounded on original_source/src/pattern_library.cpp, which uses
// boost::property_tree to read/write the same JSON shape; here
// github.com/goccy/go-json replaces boost's ptree for both directions,
// chosen over encoding/json the way this module prefers a real
// ecosystem library at every serialization boundary.
package patternlib

import (
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/lvlath-contrib/cna/errs"
	"github.com/lvlath-contrib/cna/pattern"
)

// entry is the on-disk JSON representation of one pattern.
type entry struct {
	Label       string `json:"label"`
	Fingerprint string `json:"fingerprint"`
	Color       string `json:"color"`
}

// document is the root JSON shape: {"patterns": {key: entry, ...}}.
type document struct {
	Patterns map[string]entry `json:"patterns"`
}

// JSONLibrary is a pattern.Library backed by a JSON file. It is safe for
// concurrent reads; mutating operations (Add/Edit/Remove) serialize
// through an internal mutex.
type JSONLibrary struct {
	mu          sync.RWMutex
	byKey       map[string]pattern.Pattern
	byFingerprint map[string]pattern.Pattern
}

// New constructs an empty library seeded only with the mandatory unknown
// entry, matching PatternLibrary's default constructor.
func New() *JSONLibrary {
	l := &JSONLibrary{
		byKey:         make(map[string]pattern.Pattern),
		byFingerprint: make(map[string]pattern.Pattern),
	}
	l.byKey[pattern.UnknownKey] = pattern.Pattern{Key: pattern.UnknownKey, Label: "Unknown", Fingerprint: ""}

	return l
}

// Load reads a pattern library from filename, validating every key,
// fingerprint, and color against pattern's syntax rules and requiring
// the mandatory "unknown" key to be present.
func Load(filename string) (*JSONLibrary, error) {
	const op = "patternlib.Load"
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.New(op, errs.Io, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(op, errs.InvalidInput, err)
	}

	l := &JSONLibrary{
		byKey:         make(map[string]pattern.Pattern, len(doc.Patterns)),
		byFingerprint: make(map[string]pattern.Pattern, len(doc.Patterns)),
	}
	for key, e := range doc.Patterns {
		if !pattern.IsValidKey(key) {
			return nil, errs.New(op, errs.InvalidInput, invalidf("key", key))
		}
		if e.Fingerprint != "" && !pattern.IsValidFingerprint(e.Fingerprint) {
			return nil, errs.New(op, errs.InvalidInput, invalidf("fingerprint", e.Fingerprint))
		}
		if e.Color != "" && !pattern.IsValidColor(e.Color) {
			return nil, errs.New(op, errs.InvalidInput, invalidf("color", e.Color))
		}
		p := pattern.Pattern{Key: key, Label: e.Label, Fingerprint: e.Fingerprint, Color: e.Color}
		l.byKey[key] = p
		if e.Fingerprint != "" {
			l.byFingerprint[e.Fingerprint] = p
		}
	}
	if _, ok := l.byKey[pattern.UnknownKey]; !ok {
		return nil, errs.New(op, errs.InvalidInput, errMissingUnknown)
	}

	return l, nil
}

// Store writes the library to filename as the same {"patterns": {...}}
// JSON shape Load reads.
func (l *JSONLibrary) Store(filename string) error {
	const op = "patternlib.Store"
	l.mu.RLock()
	doc := document{Patterns: make(map[string]entry, len(l.byKey))}
	for key, p := range l.byKey {
		doc.Patterns[key] = entry{Label: p.Label, Fingerprint: p.Fingerprint, Color: p.Color}
	}
	l.mu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.New(op, errs.InvalidState, err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errs.New(op, errs.Io, err)
	}

	return nil
}

// Lookup implements pattern.Library.
func (l *JSONLibrary) Lookup(fingerprint string) (pattern.Pattern, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byFingerprint[fingerprint]
	if !ok {
		return l.byKey[pattern.UnknownKey], false
	}

	return p, true
}

// ByKey implements pattern.Library.
func (l *JSONLibrary) ByKey(key string) (pattern.Pattern, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byKey[key]

	return p, ok
}

// Unknown implements pattern.Library.
func (l *JSONLibrary) Unknown() pattern.Pattern {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.byKey[pattern.UnknownKey]
}

// Add inserts a new pattern under key, failing if key already exists or
// any field is syntactically invalid.
func (l *JSONLibrary) Add(key, label, fingerprint, color string) error {
	const op = "patternlib.Add"
	if !pattern.IsValidKey(key) {
		return errs.New(op, errs.InvalidInput, invalidf("key", key))
	}
	if fingerprint != "" && !pattern.IsValidFingerprint(fingerprint) {
		return errs.New(op, errs.InvalidInput, invalidf("fingerprint", fingerprint))
	}
	if color != "" && !pattern.IsValidColor(color) {
		return errs.New(op, errs.InvalidInput, invalidf("color", color))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.byKey[key]; exists {
		return errs.New(op, errs.InvalidInput, keyExistsErr(key))
	}
	p := pattern.Pattern{Key: key, Label: label, Fingerprint: fingerprint, Color: color}
	l.byKey[key] = p
	if fingerprint != "" {
		l.byFingerprint[fingerprint] = p
	}

	return nil
}

// Edit replaces the pattern stored under key, failing if key does not exist.
func (l *JSONLibrary) Edit(key, label, fingerprint, color string) error {
	const op = "patternlib.Edit"
	if fingerprint != "" && !pattern.IsValidFingerprint(fingerprint) {
		return errs.New(op, errs.InvalidInput, invalidf("fingerprint", fingerprint))
	}
	if color != "" && !pattern.IsValidColor(color) {
		return errs.New(op, errs.InvalidInput, invalidf("color", color))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	old, exists := l.byKey[key]
	if !exists {
		return errs.New(op, errs.NotFound, keyMissingErr(key))
	}
	if old.Fingerprint != "" {
		delete(l.byFingerprint, old.Fingerprint)
	}
	p := pattern.Pattern{Key: key, Label: label, Fingerprint: fingerprint, Color: color}
	l.byKey[key] = p
	if fingerprint != "" {
		l.byFingerprint[fingerprint] = p
	}

	return nil
}

// Remove deletes the pattern stored under key. Removing the mandatory
// "unknown" key is refused.
func (l *JSONLibrary) Remove(key string) error {
	const op = "patternlib.Remove"
	if key == pattern.UnknownKey {
		return errs.New(op, errs.InvalidInput, errCannotRemoveUnknown)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	p, exists := l.byKey[key]
	if !exists {
		return errs.New(op, errs.NotFound, keyMissingErr(key))
	}
	delete(l.byKey, key)
	if p.Fingerprint != "" {
		delete(l.byFingerprint, p.Fingerprint)
	}

	return nil
}

func invalidf(field, value string) error {
	return fmt.Errorf("patternlib: invalid %s %q", field, value)
}

func keyExistsErr(key string) error {
	return fmt.Errorf("patternlib: key %q already exists", key)
}

func keyMissingErr(key string) error {
	return fmt.Errorf("patternlib: key %q not found", key)
}

var errMissingUnknown = fmt.Errorf("patternlib: library is missing the mandatory %q entry", pattern.UnknownKey)
var errCannotRemoveUnknown = fmt.Errorf("patternlib: cannot remove the mandatory %q entry", pattern.UnknownKey)

// List returns every stored pattern, in no particular order.
func (l *JSONLibrary) List() []pattern.Pattern {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]pattern.Pattern, 0, len(l.byKey))
	for _, p := range l.byKey {
		out = append(out, p)
	}

	return out
}
