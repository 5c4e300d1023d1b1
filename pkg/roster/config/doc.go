/*
Package config provides typed extraction of roster settings from decoded
configuration documents.

# Overview

A Config wraps a map[string]any produced by one of the loaders. Accessors
never fail: a missing key or an unusable value yields the supplied default.

	cfg, err := config.FromFile("roster.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	delay := cfg.Duration("work_delay", 50*time.Millisecond)
	pricing := cfg.Map("pricing")

# Formats

FromFile picks a decoder by extension:
  - .yaml, .yml: gopkg.in/yaml.v3
  - .json: encoding/json
  - .hcl: top-level attributes evaluated with hashicorp/hcl
  - .env: dotenv, keeping only ROSTER_-prefixed keys

Layer sources with Merge; later sources win:

	base, _ := config.FromFile("roster.hcl")
	cfg := base.Merge(config.FromEnv())

# Numbers

YAML decodes whole numbers as int while JSON and HCL produce float64. Int,
Float and Number accept all of these. Duration treats bare numbers as
milliseconds.

# Thread Safety

Config is safe for concurrent reads. It is never modified after creation;
Merge returns a new value.
*/
package config
