// Package seeds holds the default taxonomy loaded by `warden seed`.
package seeds

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

type Taxonomy struct {
	Roles   []RoleSeed   `yaml:"roles"`
	Modules []ModuleSeed `yaml:"modules"`
	Admin   AdminSeed    `yaml:"admin"`
}

type RoleSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	GrantAll    bool   `yaml:"grant_all"`
}

type ModuleSeed struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Icon        string          `yaml:"icon"`
	SortOrder   int             `yaml:"sort_order"`
	SubModules  []SubModuleSeed `yaml:"sub_modules"`
}

type SubModuleSeed struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Icon        string           `yaml:"icon"`
	URL         string           `yaml:"url"`
	SortOrder   int              `yaml:"sort_order"`
	Permissions []PermissionSeed `yaml:"permissions"`
}

type PermissionSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// AdminSeed describes the bootstrap account. Email and password come from
// configuration, not from the file.
type AdminSeed struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone"`
	Role      string `yaml:"role"`
}

// Default returns the embedded taxonomy.
func Default() (*Taxonomy, error) {
	return Parse(defaultTaxonomy)
}

// Parse decodes a taxonomy document and rejects unknown keys.
func Parse(data []byte) (*Taxonomy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Taxonomy
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Taxonomy) validate() error {
	roles := make(map[string]struct{}, len(t.Roles))
	for _, r := range t.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("taxonomy: role without a name")
		}
		roles[strings.ToLower(strings.TrimSpace(r.Name))] = struct{}{}
	}
	if t.Admin.Role != "" {
		if _, ok := roles[strings.ToLower(strings.TrimSpace(t.Admin.Role))]; !ok {
			return fmt.Errorf("taxonomy: admin role %q is not declared", t.Admin.Role)
		}
	}
	for _, m := range t.Modules {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("taxonomy: module without a name")
		}
		for _, s := range m.SubModules {
			if strings.TrimSpace(s.Name) == "" {
				return fmt.Errorf("taxonomy: sub-module without a name in module %q", m.Name)
			}
			for _, p := range s.Permissions {
				if strings.TrimSpace(p.Name) == "" {
					return fmt.Errorf("taxonomy: permission without a name in %q / %q", m.Name, s.Name)
				}
			}
		}
	}
	return nil
}

// Counts reports the number of modules, sub-modules and permissions.
func (t *Taxonomy) Counts() (modules, subModules, permissions int) {
	modules = len(t.Modules)
	for _, m := range t.Modules {
		subModules += len(m.SubModules)
		for _, s := range m.SubModules {
			permissions += len(s.Permissions)
		}
	}
	return modules, subModules, permissions
}
