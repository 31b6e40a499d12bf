package installer

import "strings"

// PackageManager describes how to invoke a JavaScript package manager to add
// development dependencies.
// - Name: profile key for the dependency list ("npm", "yarn").
// - Binary: executable looked up on PATH.
// - Subcommand/Flags: placed before the dependency list.
type PackageManager struct {
	Name       string
	Binary     string
	Subcommand string
	Flags      []string
}

// NPM installs with `npm install --save-dev`. It is the default.
var NPM = PackageManager{
	Name:       "npm",
	Binary:     "npm",
	Subcommand: "install",
	Flags:      []string{"--save-dev"},
}

// Yarn installs with `yarn add --dev`. Selected by --yarn.
var Yarn = PackageManager{
	Name:       "yarn",
	Binary:     "yarn",
	Subcommand: "add",
	Flags:      []string{"--dev"},
}

// Select picks the package manager from the --yarn flag. There is no
// validation beyond the flag's presence.
func Select(useYarn bool) PackageManager {
	if useYarn {
		return Yarn
	}
	return NPM
}

// InstallArgs returns the arguments following the binary name.
func (pm PackageManager) InstallArgs(deps []string) []string {
	args := make([]string, 0, 1+len(pm.Flags)+len(deps))
	args = append(args, pm.Subcommand)
	args = append(args, pm.Flags...)
	args = append(args, deps...)
	return args
}

// CommandLine renders the full install command for display.
func (pm PackageManager) CommandLine(deps []string) string {
	return pm.Binary + " " + strings.Join(pm.InstallArgs(deps), " ")
}
