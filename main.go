package main

import (
	"setup-lint/cmd"
)

// main delegates to cmd.Execute, which parses flags and runs the bootstrap.
//
// setup-lint prepares a JavaScript project for linting and formatting:
//   - Finds the nearest package.json, walking up from the working directory
//   - Installs eslint, prettier and a shared eslint config with npm (or yarn
//     with --yarn) as development dependencies
//   - Writes the "eslintConfig" and "prettier" sections into package.json,
//     replacing any existing values and leaving every other key as it was
//
// Steps run one after another and the first failure stops the run with a
// non-zero exit status. A failed install leaves package.json untouched; a
// failure after the install does not uninstall anything.
func main() {
	cmd.Execute()
}
