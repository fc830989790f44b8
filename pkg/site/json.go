package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
)

// JSON loads site files in JSON format (.json).
type JSON struct{}

func (JSON) Type() string { return "json" }

func (JSON) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func (JSON) Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw siteFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSite, err, "parsing %s", path)
	}
	return buildSite(raw, path)
}
