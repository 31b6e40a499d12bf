package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadProfile_BuiltIn(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Name != "personal" {
		t.Fatalf("name = %q, want personal", p.Name)
	}

	npm, err := p.DependenciesFor("npm")
	if err != nil {
		t.Fatalf("npm dependencies: %v", err)
	}
	wantNpm := []string{"eslint", "prettier", "olsonpm/eslint-config-personal"}
	if !reflect.DeepEqual(npm, wantNpm) {
		t.Fatalf("npm dependencies = %v, want %v", npm, wantNpm)
	}

	yarn, err := p.DependenciesFor("yarn")
	if err != nil {
		t.Fatalf("yarn dependencies: %v", err)
	}
	if len(yarn) != 4 || yarn[2] != "eslint-config-prettier" {
		t.Fatalf("yarn dependencies = %v, want the prettier bridge third", yarn)
	}

	if len(p.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(p.Blocks))
	}
	if p.Blocks[0].Key != "eslintConfig" || string(p.Blocks[0].Value) != `{"extends":"personal"}` {
		t.Fatalf("eslintConfig block = %s %s", p.Blocks[0].Key, p.Blocks[0].Value)
	}
	wantPrettier := `{"singleQuote":true,"trailingComma":"es5","semi":false,"arrowParens":"avoid"}`
	if p.Blocks[1].Key != "prettier" || string(p.Blocks[1].Value) != wantPrettier {
		t.Fatalf("prettier block = %s %s, want %s", p.Blocks[1].Key, p.Blocks[1].Value, wantPrettier)
	}
}

func TestDependenciesFor_ReturnsCopy(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	deps, _ := p.DependenciesFor("npm")
	deps[0] = "mutated"
	again, _ := p.DependenciesFor("npm")
	if again[0] != "eslint" {
		t.Fatalf("profile dependencies were mutated through returned slice")
	}
}

func TestDependenciesFor_UnknownManager(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if _, err := p.DependenciesFor("pnpm"); err == nil {
		t.Fatalf("expected error for unknown package manager")
	}
}

func TestLoadProfile_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `name: strict
package_managers:
  npm:
    dependencies: [eslint]
  yarn:
    dependencies: [eslint]
blocks:
  - key: prettier
    value:
      semi: true
      printWidth: 100
      overrides:
        - files: "*.md"
          options: { proseWrap: always }
  - key: eslintConfig
    value: null
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	want := `{"semi":true,"printWidth":100,"overrides":[{"files":"*.md","options":{"proseWrap":"always"}}]}`
	if got := string(p.Blocks[0].Value); got != want {
		t.Fatalf("prettier block = %s, want %s", got, want)
	}
	if got := string(p.Blocks[1].Value); got != "null" {
		t.Fatalf("eslintConfig block = %s, want null", got)
	}
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not yaml",
			content: "name: [unterminated",
			wantErr: "parse profile YAML",
		},
		{
			name:    "empty document",
			content: "",
			wantErr: "invalid profile",
		},
		{
			name: "missing yarn",
			content: `name: x
package_managers:
  npm: { dependencies: [eslint] }
blocks:
  - { key: prettier, value: {} }
`,
			wantErr: "invalid profile",
		},
		{
			name: "no blocks",
			content: `name: x
package_managers:
  npm: { dependencies: [eslint] }
  yarn: { dependencies: [eslint] }
blocks: []
`,
			wantErr: "invalid profile",
		},
		{
			name: "block without value",
			content: `name: x
package_managers:
  npm: { dependencies: [eslint] }
  yarn: { dependencies: [eslint] }
blocks:
  - key: prettier
`,
			wantErr: "invalid profile",
		},
		{
			name: "duplicate block",
			content: `name: x
package_managers:
  npm: { dependencies: [eslint] }
  yarn: { dependencies: [eslint] }
blocks:
  - { key: prettier, value: {} }
  - { key: prettier, value: { semi: false } }
`,
			wantErr: "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read profile") {
		t.Fatalf("error = %v, want read failure", err)
	}
}
