package roster

import (
	"strings"

	"github.com/randalmurphal/roster/pkg/roster/config"
)

// Author identifies who maintains a module.
type Author struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
}

// String returns "First Last", trimmed when either part is missing.
func (a Author) String() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Module pairs static identification with its registry.
type Module struct {
	Author   Author
	Registry *Registry
}

// NewModule creates a module with a fresh, empty registry.
func NewModule(author Author, opts ...Option) *Module {
	return &Module{
		Author:   author,
		Registry: New(opts...),
	}
}

// ModuleFromConfig builds a module from configuration: "author" supplies the
// identification, "work_delay" and "name" configure the registry, and
// "participants" and "pricing" seed it through Seed.Apply. Options in opts are
// applied after the configured ones.
//
// Example YAML:
//
//	author:
//	  first_name: Ada
//	  last_name: Lovelace
//	work_delay: 50ms
//	participants:
//	  - name: Grace
//	    seniority_level: senior
//	pricing:
//	  senior: 40
func ModuleFromConfig(cfg config.Config, opts ...Option) *Module {
	authorCfg := cfg.Sub("author")
	author := Author{
		FirstName: authorCfg.String("first_name", ""),
		LastName:  authorCfg.String("last_name", ""),
	}

	m := NewModule(author, append(OptionsFromConfig(cfg), opts...)...)
	SeedFromConfig(cfg).Apply(m.Registry)
	return m
}
