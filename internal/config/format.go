package config

import (
	"path/filepath"
	"strings"
)

// Format is the serialization format of a configuration file.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "YAML"
	case FormatTOML:
		return "TOML"
	case FormatJSON:
		return "JSON"
	default:
		return "unknown"
	}
}

// DetectFormat maps the lower-cased extension of path to a [Format].
// The file content is never inspected.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	switch ext {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, &UnsupportedFormatError{Extension: ext}
	}
}
