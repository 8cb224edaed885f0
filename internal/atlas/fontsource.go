package atlas

import (
	"os"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// PathFontSource resolves family names to font files on disk via a
// caller-supplied map (e.g. populated from fontconfig output or a
// config-file table). Parsed fonts are cached so repeated Resolve calls
// (across atlas rebuilds on a font-size change) don't re-parse the file.
type PathFontSource struct {
	mu    sync.Mutex
	paths map[string]string
	cache map[string]*sfnt.Font
}

// NewPathFontSource builds a PathFontSource from a family -> file path map.
func NewPathFontSource(paths map[string]string) *PathFontSource {
	return &PathFontSource{
		paths: paths,
		cache: make(map[string]*sfnt.Font),
	}
}

// Resolve implements FontSource.
func (s *PathFontSource) Resolve(family string) (*sfnt.Font, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.cache[family]; ok {
		return f, true
	}

	path, ok := s.paths[family]
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	fnt, err := parseOpentypeBytes(data)
	if err != nil {
		return nil, false
	}
	s.cache[family] = fnt
	return fnt, true
}
