package site

import (
	"encoding/json"
	"path/filepath"
	"strings"

	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
	"github.com/rafterlab/rafterplan/pkg/plan"
	"github.com/rafterlab/rafterplan/pkg/roof"
)

// Site is one installation read from a site file: a name, the merged rule
// configuration, and the panel layout in file order.
type Site struct {
	Name   string
	Config plan.Config
	Panels []roof.Panel
}

// Loader reads a site definition from one file format.
type Loader interface {
	// Load reads and validates the site at path.
	Load(path string) (*Site, error)
	// Supports reports whether this loader handles the given filename.
	Supports(filename string) bool
	// Type returns the format identifier (e.g., "toml", "yaml").
	Type() string
}

// Loaders returns the built-in loaders: TOML, YAML, and JSON.
func Loaders() []Loader {
	return []Loader{TOML{}, YAML{}, JSON{}}
}

// Detect finds a loader that supports the given file path.
// Returns an UNSUPPORTED error if no loader matches.
func Detect(path string, loaders ...Loader) (Loader, error) {
	name := filepath.Base(path)
	for _, l := range loaders {
		if l.Supports(name) {
			return l, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported site file: %s", name)
}

// Load reads a site file using whichever built-in loader matches its
// extension.
func Load(path string) (*Site, error) {
	l, err := Detect(path, Loaders()...)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Parse decodes a JSON site description that did not come from a file,
// such as an HTTP request body. When the description carries no name,
// fallback is used instead.
func Parse(data []byte, fallback string) (*Site, error) {
	var raw siteFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSite, err, "parsing site")
	}
	return buildSite(raw, fallback)
}

// stem returns the filename without directory or extension, used as the
// site name when the file does not set one.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
