package source

// Registry owns the set of Sources participating in a single compilation
// and hands out stable FileIDs. Braggi's driver constructs exactly one
// Registry per top-level invocation; nothing outside the registry may
// allocate a FileID.
type Registry struct {
	sources []*Source
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers raw bytes as a new Source, assigning it the next FileID.
func (r *Registry) Add(name string, contents []byte) *Source {
	id := FileID(len(r.sources))
	src := New(id, name, contents)
	r.sources = append(r.sources, src)

	return src
}

// AddFile reads a file from disk and registers it as a new Source.
func (r *Registry) AddFile(path string) (*Source, error) {
	id := FileID(len(r.sources))

	src, err := ReadFile(id, path)
	if err != nil {
		return nil, err
	}

	r.sources = append(r.sources, src)

	return src, nil
}

// Get looks up a previously-registered Source by its FileID. Returns nil if
// id is out of range.
func (r *Registry) Get(id FileID) *Source {
	if int(id) < 0 || int(id) >= len(r.sources) {
		return nil
	}

	return r.sources[id]
}

// Len returns the number of sources currently registered.
func (r *Registry) Len() int { return len(r.sources) }
