// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// parseFile reads the configuration file at path and decodes it with the
// format resolved by [DetectFormat].
//
// Returns an *UnsupportedFormatError for unknown extensions, a *ReadError
// when the file cannot be read and a *ParseError when the content is
// malformed or a value does not fit its field type.
func parseFile(path string) (*fileDocument, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	doc, err := decodeDocument(format, data)
	if err != nil {
		return nil, &ParseError{Format: format, Path: path, Err: err}
	}

	return doc, nil
}

func decodeDocument(format Format, data []byte) (*fileDocument, error) {
	var (
		doc fileDocument
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, &UnsupportedFormatError{Extension: format.String()}
	}

	if err != nil {
		return nil, err
	}

	return &doc, nil
}
