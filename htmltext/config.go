package htmltext

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileOptions is the on-disk shape: Options fields at the top level, and a
// selectors list merged entry by entry into the default table.
type fileOptions struct {
	Options   `yaml:",inline"`
	Selectors []yaml.Node `yaml:"selectors"`
}

// LoadOptionsFile reads a YAML options file. See ParseOptions.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("htmltext: read options: %w", err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes YAML over DefaultOptions. Each selectors entry
// overrides only the fields it names on the default entry with the same
// selector string; unknown selectors are appended.
//
//	wordwrap: 100
//	selectors:
//	  - selector: a
//	    options: {base_url: "https://example.com"}
//	  - selector: table
//	    format: dataTable
func ParseOptions(data []byte) (Options, error) {
	fo := fileOptions{Options: DefaultOptions()}
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return Options{}, fmt.Errorf("htmltext: parse options: %w", err)
	}
	opts := fo.Options
	for i := range fo.Selectors {
		node := &fo.Selectors[i]
		var key struct {
			Selector string `yaml:"selector"`
		}
		if err := node.Decode(&key); err != nil {
			return Options{}, fmt.Errorf("htmltext: parse options: selectors[%d]: %w", i, err)
		}
		if key.Selector == "" {
			return Options{}, fmt.Errorf("htmltext: parse options: selectors[%d]: missing selector", i)
		}
		if err := node.Decode(opts.Selector(key.Selector)); err != nil {
			return Options{}, fmt.Errorf("htmltext: parse options: selectors[%d] %q: %w", i, key.Selector, err)
		}
	}
	return opts, nil
}
