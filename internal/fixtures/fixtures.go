// Package fixtures loads the jobs the board starts with.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed jobs.yaml
var defaultJobs []byte

// LoadJobs returns untyped job candidates from path, or the embedded
// defaults when path is empty. Candidates still need schema validation.
func LoadJobs(path string) ([]map[string]any, error) {
	data := defaultJobs
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	var jobs []map[string]any
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse seed jobs: %w", err)
	}
	return jobs, nil
}
