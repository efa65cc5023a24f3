package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a named group of reduction cases loaded from YAML.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists CUE definition files loaded on top of the builtin
	// vocabulary, in order. Paths are relative to the scenario file.
	Specs []string `yaml:"specs,omitempty"`

	// MaxDepth overrides the depth budget for every case.
	// If nil, engine.DefaultMaxDepth is used.
	MaxDepth *int `yaml:"max_depth,omitempty"`

	// Cases are reduced in order.
	Cases []Case `yaml:"cases"`
}

// Case is one term to reduce and what it should reduce to.
type Case struct {
	Name string `yaml:"name"`

	// Term is an expression: a name, a numeral, or a list applied
	// left-associatively (see compiler.Build).
	Term any `yaml:"term"`

	Expect Expect `yaml:"expect"`
}

// Expect describes the expected outcome of a case.
// Error excludes Result and Realized.
type Expect struct {
	// Result is an expression that is reduced and compared structurally
	// with the case's reduced term.
	Result any `yaml:"result,omitempty"`

	// Realized is the expected realized debug string.
	Realized string `yaml:"realized,omitempty"`

	// Error is the expected failure: depth_exceeded or malformed.
	Error string `yaml:"error,omitempty"`
}

// Expected error names.
const (
	ExpectDepthExceeded = "depth_exceeded"
	ExpectMalformed     = "malformed"
)

// LoadScenario reads and parses a scenario YAML file.
// Spec paths are resolved relative to the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving spec paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) && basePath != "" {
			scenario.Specs[i] = filepath.Join(basePath, specPath)
		}
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating spec paths.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// FindScenarios lists the .yaml and .yml files in dir, sorted by name.
// A non-empty filter is a filepath.Match pattern applied to the file name
// without its extension.
func FindScenarios(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if filter != "" {
			ok, err := filepath.Match(filter, strings.TrimSuffix(name, ext))
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	if s.MaxDepth != nil && *s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", *s.MaxDepth)
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec file not found: %s", specPath)
		}
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if err := validateCase(i, &c); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	return nil
}

// validateCase validates a single case and its expectation.
func validateCase(index int, c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("cases[%d]: name is required", index)
	}
	if c.Term == nil {
		return fmt.Errorf("cases[%d]: term is required", index)
	}

	e := c.Expect
	switch e.Error {
	case "":
		if e.Result == nil && e.Realized == "" {
			return fmt.Errorf("cases[%d]: expect needs result, realized or error", index)
		}
	case ExpectDepthExceeded, ExpectMalformed:
		if e.Result != nil || e.Realized != "" {
			return fmt.Errorf("cases[%d]: expect.error excludes result and realized", index)
		}
	default:
		return fmt.Errorf("cases[%d]: unknown expected error %q", index, e.Error)
	}

	return nil
}
