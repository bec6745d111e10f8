package quote

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a quote record from a JSON object.
func ParseJSON(data []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing JSON quote: %w", err)
	}
	if record == nil {
		record = Record{}
	}
	return record, nil
}

// ParseYAML decodes a quote record from a YAML mapping.
func ParseYAML(data []byte) (Record, error) {
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing YAML quote: %w", err)
	}
	if record == nil {
		record = Record{}
	}
	return record, nil
}

// ReadFile loads a quote record, choosing the decoder from the file
// extension (.yaml/.yml, anything else is treated as JSON).
func ReadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quote file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
