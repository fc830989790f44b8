package site

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
)

// YAML loads site files in YAML format (.yaml, .yml).
type YAML struct{}

func (YAML) Type() string { return "yaml" }

func (YAML) Supports(filename string) bool {
	e := filepath.Ext(filename)
	return strings.EqualFold(e, ".yaml") || strings.EqualFold(e, ".yml")
}

func (YAML) Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw siteFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSite, err, "parsing %s", path)
	}
	return buildSite(raw, path)
}
