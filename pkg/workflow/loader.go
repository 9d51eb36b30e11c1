package workflow

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parse decodes a workflow document from JSON or YAML. JSON is detected
// by the first non-space byte; everything else goes through the YAML
// decoder, which also accepts JSON but with laxer number handling.
func Parse(data []byte) (*WorkflowDefinition, error) {
	var wf WorkflowDefinition
	if isJSON(data) {
		if err := json.Unmarshal(data, &wf); err != nil {
			return nil, errors.Wrap(err, "parsing workflow JSON")
		}
		return &wf, nil
	}
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, errors.Wrap(err, "parsing workflow YAML")
	}
	return &wf, nil
}

// Load reads and parses a workflow document from disk.
func Load(path string) (*WorkflowDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading workflow file %s", path)
	}
	wf, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading workflow file %s", path)
	}
	return wf, nil
}

func isJSON(data []byte) bool {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
