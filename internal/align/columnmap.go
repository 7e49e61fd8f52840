package align

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadColumnMap reads a source-column -> target-column mapping from a
// flat YAML document. Unknown target columns are tolerated here; Align
// ignores pairs whose target the schema does not declare.
func LoadColumnMap(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column map: %w", err)
	}
	m := make(map[string]string)
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse column map: %w", err)
	}
	return m, nil
}
