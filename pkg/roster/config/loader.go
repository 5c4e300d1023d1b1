package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks the environment and dotenv keys that belong to roster.
// ROSTER_WORK_DELAY maps to the key "work_delay".
const EnvPrefix = "ROSTER_"

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json, .hcl, .env
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".hcl":
		return FromHCL(data, filepath.Base(path))
	case ".env":
		return FromDotEnv(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// FromHCL parses top-level HCL attributes into a Config.
// Blocks are not supported; use object and tuple expressions instead:
//
//	work_delay = "50ms"
//	pricing = { junior = 10, senior = 25 }
//	participants = [{ name = "ann", seniority_level = "junior" }]
//
// The filename only appears in diagnostics.
func FromHCL(data []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("parse hcl: %s", diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("parse hcl: %s", diags.Error())
	}

	m := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Config{}, fmt.Errorf("evaluate hcl attribute %q: %s", name, diags.Error())
		}
		v, err := ctyToGo(val)
		if err != nil {
			return Config{}, fmt.Errorf("convert hcl attribute %q: %w", name, err)
		}
		m[name] = v
	}
	return New(m), nil
}

// ctyToGo converts an evaluated HCL value to the shapes the JSON decoder
// produces: string, float64, bool, []any and map[string]any.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			conv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = conv
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			conv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
}

// FromDotEnv parses dotenv data into a Config.
// Only ROSTER_-prefixed keys are kept; the prefix is stripped and the rest
// lowercased. All values are strings.
func FromDotEnv(data []byte) (Config, error) {
	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("parse dotenv: %w", err)
	}
	return fromPrefixed(env), nil
}

// FromEnv builds a Config from ROSTER_-prefixed process environment variables.
func FromEnv() Config {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return fromPrefixed(env)
}

func fromPrefixed(env map[string]string) Config {
	m := make(map[string]any)
	for k, v := range env {
		if !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
		if key == "" {
			continue
		}
		m[key] = v
	}
	return New(m)
}
