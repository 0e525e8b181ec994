package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// loadGraph decodes the YAML or JSON document at the given path into a
// generic object graph of maps, slices, and scalars. JSON needs no special
// handling because it is a YAML subset.
func loadGraph(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var graph interface{}
	if err := yaml.Unmarshal(raw, &graph); err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", path, err)
	}
	if graph == nil {
		return nil, fmt.Errorf("%s holds an empty document", path)
	}
	return graph, nil
}

func escapeSequencesSupported(target *os.File) bool {
	return term.IsTerminal(int(target.Fd()))
}
