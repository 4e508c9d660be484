package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// runProfile is optional, non-normative run metadata layered under
// flag values. It carries no weight over the bundle contents
// themselves; it only affects how this run is labeled and where its
// report lands.
type runProfile struct {
	ImplementationName string `yaml:"implementation_name"`
	FailFast           bool   `yaml:"fail_fast"`
	OutputPath         string `yaml:"output_path"`
}

func loadProfile(path string) (runProfile, error) {
	if path == "" {
		return runProfile{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return runProfile{}, err
	}
	var p runProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return runProfile{}, err
	}
	return p, nil
}
