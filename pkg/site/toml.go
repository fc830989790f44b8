package site

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
)

// TOML loads site files in TOML format (.toml).
type TOML struct{}

func (TOML) Type() string { return "toml" }

func (TOML) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func (TOML) Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw siteFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSite, err, "parsing %s", path)
	}
	return buildSite(raw, path)
}
