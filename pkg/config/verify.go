package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checks required properties, property types, minimums and patterns, enough for the flat config structure.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, []byte(embeddedSchema))
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Defs       map[string]*schemaNode `json:"$defs"`
	Type       string                 `json:"type"`
	Required   []string               `json:"required"`
	Properties map[string]*schemaNode `json:"properties"`
	Minimum    *float64               `json:"minimum"`
	Pattern    string                 `json:"pattern"`
}

func verify(cfg *Config, schemaData []byte) error {
	var root schemaNode
	if err := json.Unmarshal(schemaData, &root); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var errs []string
	(&schemaWalker{defs: root.Defs}).walk("", &root, configMap, &errs)
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

type schemaWalker struct {
	defs map[string]*schemaNode
}

func (w *schemaWalker) resolve(n *schemaNode) *schemaNode {
	for n != nil && n.Ref != "" {
		name := strings.TrimPrefix(n.Ref, "#/$defs/")
		n = w.defs[name]
	}
	return n
}

func (w *schemaWalker) walk(path string, n *schemaNode, value any, errs *[]string) {
	n = w.resolve(n)
	if n == nil {
		return
	}

	name := path
	if name == "" {
		name = "config"
	}

	switch n.Type {
	case "object":
		obj, ok := value.(map[string]any)
		if !ok {
			*errs = append(*errs, fmt.Sprintf("%s must be an object", name))
			return
		}
		for _, req := range n.Required {
			if _, ok := obj[req]; !ok {
				*errs = append(*errs, fmt.Sprintf("%s is required", join(path, req)))
			}
		}
		for key, prop := range n.Properties {
			if v, ok := obj[key]; ok {
				w.walk(join(path, key), prop, v, errs)
			}
		}
	case "string":
		s, ok := value.(string)
		if !ok {
			*errs = append(*errs, fmt.Sprintf("%s must be a string", name))
			return
		}
		if n.Pattern != "" {
			re, err := regexp.Compile(n.Pattern)
			if err == nil && !re.MatchString(s) {
				*errs = append(*errs, fmt.Sprintf("%s %q does not match %s", name, s, n.Pattern))
			}
		}
	case "integer", "number":
		f, ok := value.(float64)
		if !ok {
			*errs = append(*errs, fmt.Sprintf("%s must be a number", name))
			return
		}
		if n.Minimum != nil && f < *n.Minimum {
			*errs = append(*errs, fmt.Sprintf("%s must be at least %v", name, *n.Minimum))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			*errs = append(*errs, fmt.Sprintf("%s must be a boolean", name))
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
