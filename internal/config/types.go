package config

import "fmt"

// Profile is the data one revision of the bootstrap applies: the development
// dependencies to install for each package manager and the configuration
// blocks merged into package.json.
type Profile struct {
	Name string

	// Dependencies maps a package manager name ("npm", "yarn") to the ordered
	// list of package specifiers passed to its install command.
	Dependencies map[string][]string

	// Blocks are applied in order; each one overwrites a top-level manifest key.
	Blocks []Block
}

// Block is a single top-level manifest entry.
// - Key: the top-level key written into package.json (e.g. "prettier").
// - Value: the literal JSON value, key order preserved from the YAML source.
type Block struct {
	Key   string
	Value []byte
}

// DependenciesFor returns the dependency list configured for the named
// package manager.
func (p *Profile) DependenciesFor(manager string) ([]string, error) {
	deps, ok := p.Dependencies[manager]
	if !ok || len(deps) == 0 {
		return nil, fmt.Errorf("profile %q has no dependencies for package manager %q", p.Name, manager)
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out, nil
}

// rawProfile mirrors the profile YAML layout.
// Block values stay as yaml.Node so their mapping order survives decoding.
type rawProfile struct {
	Name            string                `yaml:"name"`
	PackageManagers map[string]rawManager `yaml:"package_managers"`
	Blocks          []rawBlock            `yaml:"blocks"`
}

type rawManager struct {
	Dependencies []string `yaml:"dependencies"`
}
