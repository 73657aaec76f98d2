// Package dedup tracks which filenames already exist at the destination so
// the same attachment is never uploaded twice.
package dedup

// Index is an in-memory set of filenames, seeded once per run from the
// destination folder listing. After each successful upload the new name
// must be added so a same-named attachment later in the run is caught; the
// remote listing is not re-queried.
//
// The pipeline is single-threaded, so Index is not safe for concurrent use.
type Index struct {
	names map[string]struct{}
}

// NewIndex builds an index from the filenames present at the destination.
func NewIndex(names []string) *Index {
	idx := &Index{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		idx.names[name] = struct{}{}
	}
	return idx
}

// Contains reports whether name is already present at the destination.
func (i *Index) Contains(name string) bool {
	_, ok := i.names[name]
	return ok
}

// Add records a freshly uploaded name.
func (i *Index) Add(name string) {
	i.names[name] = struct{}{}
}

// Len returns the number of tracked names.
func (i *Index) Len() int {
	return len(i.names)
}
