package roseingrave

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation rule types.
const (
	ValidationCheckbox = "checkbox"
	ValidationDropdown = "dropdown"
)

// MetaDataField is one header field: a lookup key and its human header text.
type MetaDataField struct {
	Key    string
	Header string
}

// MetaDataFields is an ordered list of header fields. It decodes from a yaml
// mapping, preserving document order; header rows appear in this order.
type MetaDataFields []MetaDataField

// UnmarshalYAML decodes a mapping node into ordered fields.
func (m *MetaDataFields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("metaDataFields: expected a mapping, got %s", node.Tag)
	}
	fields := make(MetaDataFields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields = append(fields, MetaDataField{
			Key:    node.Content[i].Value,
			Header: node.Content[i+1].Value,
		})
	}
	*m = fields
	return nil
}

// Keys returns the field keys in order.
func (m MetaDataFields) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// CommentFields holds the literal labels for the fixed header cells.
type CommentFields struct {
	Comments string `yaml:"comments"`
	Summary  string `yaml:"summary"`
	Notes    string `yaml:"notes"`
}

// TemplateValues holds scalar template settings.
type TemplateValues struct {
	DefaultBarCount   int `yaml:"defaultBarCount"`
	CommentsRowHeight int `yaml:"commentsRowHeight"`
}

// ValidationRule describes data validation for one header field.
type ValidationRule struct {
	Type   string   `yaml:"type"`
	Values []string `yaml:"values,omitempty"`
}

// Template is the shared configuration for every sheet: header fields,
// fixed labels, default bar count, and data validation rules.
type Template struct {
	MetaDataFields MetaDataFields            `yaml:"metaDataFields"`
	CommentFields  CommentFields             `yaml:"commentFields"`
	Values         TemplateValues            `yaml:"values"`
	Validation     map[string]ValidationRule `yaml:"validation"`
}

// DefaultTemplate returns a template with the default labels and values.
func DefaultTemplate() *Template {
	return &Template{
		CommentFields: CommentFields{
			Comments: "Comments",
			Summary:  "SUMMARY",
			Notes:    "Notes",
		},
		Values: TemplateValues{
			DefaultBarCount:   100,
			CommentsRowHeight: 200,
		},
	}
}

// LoadTemplate reads a template definitions file (yaml or json).
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes template definitions, fills in defaults, and
// validates the result.
func ParseTemplate(data []byte) (*Template, error) {
	tmpl := DefaultTemplate()
	if err := yaml.Unmarshal(data, tmpl); err != nil {
		return nil, fmt.Errorf("parse template file: %w", err)
	}
	if err := tmpl.validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (t *Template) validate() error {
	if len(t.MetaDataFields) == 0 {
		return newValidationError("metaDataFields", "key not found")
	}
	if t.Values.DefaultBarCount <= 0 {
		return newValidationError("values.defaultBarCount", "bar count must be positive")
	}
	keys := make(map[string]bool, len(t.MetaDataFields))
	for _, f := range t.MetaDataFields {
		keys[f.Key] = true
	}
	for key, rule := range t.Validation {
		if !keys[key] {
			return newValidationError("validation", "unknown field %q", key)
		}
		switch rule.Type {
		case ValidationCheckbox:
		case ValidationDropdown:
			if len(rule.Values) == 0 {
				return newValidationError("validation", "dropdown %q has no values", key)
			}
		default:
			return newValidationError("validation", "field %q: unknown type %q", key, rule.Type)
		}
	}
	return nil
}
