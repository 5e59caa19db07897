package archive

import "github.com/temirov/unmix/internal/types"

// Metadata is an ordered collection of archive metadata. Setting an existing key replaces its
// value but keeps its original position.
type Metadata struct {
	entries []types.MetadataEntry
	index   map[string]int
}

// Set stores value under key.
func (metadata *Metadata) Set(key, value string) {
	if metadata.index == nil {
		metadata.index = make(map[string]int)
	}
	if position, exists := metadata.index[key]; exists {
		metadata.entries[position].Value = value
		return
	}
	metadata.index[key] = len(metadata.entries)
	metadata.entries = append(metadata.entries, types.MetadataEntry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (metadata Metadata) Get(key string) (string, bool) {
	position, exists := metadata.index[key]
	if !exists {
		return "", false
	}
	return metadata.entries[position].Value, true
}

// Entries returns a copy of the metadata in insertion order.
func (metadata Metadata) Entries() []types.MetadataEntry {
	return append([]types.MetadataEntry(nil), metadata.entries...)
}

// Len returns the number of metadata keys.
func (metadata Metadata) Len() int {
	return len(metadata.entries)
}
