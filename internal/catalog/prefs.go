package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/JonBeak/signquote/internal/model"
	"gopkg.in/yaml.v3"
)

// PreferenceSource resolves a customer id to manufacturing preferences.
type PreferenceSource interface {
	Fetch(customerID string) (model.CustomerPreferences, error)
}

// PreferenceStore caches preference lookups with a TTL. It is an explicit
// object handed to the context-building step; invalidation happens through
// Invalidate when a preference record is edited, never through implicit
// package state.
type PreferenceStore struct {
	source  PreferenceSource
	ttl     time.Duration
	entries map[string]prefEntry
	now     func() time.Time
}

type prefEntry struct {
	prefs   model.CustomerPreferences
	fetched time.Time
}

// NewPreferenceStore creates a store over the given source. A zero ttl
// disables caching.
func NewPreferenceStore(source PreferenceSource, ttl time.Duration) *PreferenceStore {
	return &PreferenceStore{
		source:  source,
		ttl:     ttl,
		entries: map[string]prefEntry{},
		now:     time.Now,
	}
}

// Get returns the preferences for a customer. Lookup failures are never
// fatal: they resolve to the conservative defaults so validation can always
// proceed.
func (s *PreferenceStore) Get(customerID string) model.CustomerPreferences {
	if customerID == "" {
		return model.DefaultPreferences()
	}

	if entry, ok := s.entries[customerID]; ok && s.ttl > 0 && s.now().Sub(entry.fetched) < s.ttl {
		return entry.prefs
	}

	prefs, err := s.source.Fetch(customerID)
	if err != nil {
		return model.DefaultPreferences()
	}

	resolved := model.ResolvePreferences(prefs)
	s.entries[customerID] = prefEntry{prefs: resolved, fetched: s.now()}
	return resolved
}

// Invalidate drops the cached entry for a customer. Call this whenever a
// preference record is edited.
func (s *PreferenceStore) Invalidate(customerID string) {
	delete(s.entries, customerID)
}

// FilePreferenceSource reads customer preferences from a YAML file mapping
// customer ids to preference records.
type FilePreferenceSource struct {
	byCustomer map[string]model.CustomerPreferences
}

// LoadPreferences reads a preference file into a source.
func LoadPreferences(path string) (*FilePreferenceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var records map[string]model.CustomerPreferences
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	for id, p := range records {
		p.CustomerID = id
		records[id] = p
	}
	return &FilePreferenceSource{byCustomer: records}, nil
}

// StaticPreferenceSource serves a fixed preference set, for tests and for
// quoting without a preference file.
type StaticPreferenceSource map[string]model.CustomerPreferences

// Fetch implements PreferenceSource.
func (s StaticPreferenceSource) Fetch(customerID string) (model.CustomerPreferences, error) {
	p, ok := s[customerID]
	if !ok {
		return model.CustomerPreferences{}, fmt.Errorf("unknown customer '%s'", customerID)
	}
	return p, nil
}

// Fetch implements PreferenceSource.
func (f *FilePreferenceSource) Fetch(customerID string) (model.CustomerPreferences, error) {
	p, ok := f.byCustomer[customerID]
	if !ok {
		return model.CustomerPreferences{}, fmt.Errorf("unknown customer '%s'", customerID)
	}
	return p, nil
}
