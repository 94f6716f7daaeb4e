package fschema

import (
	"os"
	"path/filepath"
	"strings"

	"flatrec/flat/ftoken"
	"flatrec/flat/fvalue"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type (
	// Definitions is the root of a schema definition file.
	Definitions struct {
		Types []Definition `yaml:"types"`
	}
	// Definition describes one record type in a definition file.
	Definition struct {
		Name           string            `yaml:"tag"`
		InDelimiter    string            `yaml:"delimiter"`
		OutDelimiter   string            `yaml:"out_delimiter"`
		Header         string            `yaml:"header"`
		Output         string            `yaml:"date_output"`
		Formats        []string          `yaml:"date_formats"`
		Priority       DatePriority      `yaml:"date_priority"`
		Keys           []string          `yaml:"key_fields"`
		FieldsDeclared []FieldDefinition `yaml:"fields"`
	}
	FieldDefinition struct {
		Name     string      `yaml:"name"`
		Type     fvalue.Type `yaml:"type"`
		Skip     bool        `yaml:"skip"`
		Position int         `yaml:"position"`
	}
)

// delimiterAliases lets definition files name delimiters that are awkward to type.
var delimiterAliases = map[string]string{
	"comma": ",",
	"tab":   "\t",
	"pipe":  "|",
	"hive":  HiveDelimiter,
}

func (r *Definitions) ApplyDefaults() {
	for i := range r.Types {
		r.Types[i].ApplyDefaults()
	}
}

func (r *Definition) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
	if alias, ok := delimiterAliases[r.InDelimiter]; ok {
		r.InDelimiter = alias
	}
	if alias, ok := delimiterAliases[r.OutDelimiter]; ok {
		r.OutDelimiter = alias
	}
	if r.InDelimiter == "" {
		r.InDelimiter = DefaultDelimiter
	}
	if r.OutDelimiter == "" {
		r.OutDelimiter = r.InDelimiter
	}
	if r.Output == "" {
		r.Output = fvalue.DefaultDateOutput
	}
	if r.Priority == "" {
		r.Priority = PriorityMostRecentFirst
	}
	for i := range r.FieldsDeclared {
		if r.FieldsDeclared[i].Type == "" {
			r.FieldsDeclared[i].Type = fvalue.TypeText
		}
	}
}

func (r *Definitions) Validate() error {
	seen := map[string]bool{}
	for _, definition := range r.Types {
		if seen[definition.Name] {
			return errors.Wrapf(ErrInvalidSchema, `tag "%s" is defined twice`, definition.Name)
		}
		seen[definition.Name] = true
		err := definition.Validate()
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Definition) Validate() error {
	if r.Name == "" {
		return errors.Wrap(ErrInvalidSchema, "tag is required")
	}
	if strings.Contains(r.Name, "~") {
		return errors.Wrapf(ErrInvalidSchema, `tag "%s" must not contain "~"`, r.Name)
	}
	if r.Header == "" && len(r.FieldsDeclared) == 0 {
		return errors.Wrapf(ErrInvalidSchema, `tag "%s" declares neither header nor fields`, r.Name)
	}
	if !lo.Contains(DatePriorities, r.Priority) {
		return errors.Wrapf(ErrInvalidSchema, `tag "%s": date_priority must be one of %v, got "%s"`, r.Name, DatePriorities, r.Priority)
	}
	for _, field := range r.FieldsDeclared {
		if !fvalue.IsValidType(field.Type) {
			return errors.Wrapf(ErrInvalidSchema, `tag "%s": field "%s" has unknown type "%s"`, r.Name, field.Name, field.Type)
		}
		if field.Position < 0 {
			return errors.Wrapf(ErrInvalidSchema, `tag "%s": field "%s" has negative position`, r.Name, field.Name)
		}
	}
	return nil
}

func (r Definition) Tag() string {
	return r.Name
}

func (r Definition) DefaultDelimiter() string {
	return r.InDelimiter
}

func (r Definition) KeyFields() []string {
	return r.Keys
}

// OrderedFields lists the declared fields. When a header is set it names the fields
// and the declared fields only contribute their type and skip flag.
func (r Definition) OrderedFields() []Field {
	declared := lo.Map(r.FieldsDeclared, func(field FieldDefinition, _ int) Field {
		return Field{Name: field.Name, Position: field.Position, Skip: field.Skip, Type: field.Type}
	})
	if r.Header == "" {
		return declared
	}

	names, err := ftoken.Tokenize(r.Header, r.InDelimiter)
	if err != nil {
		return declared
	}
	byName := lo.KeyBy(declared, func(field Field) string {
		return field.Name
	})
	return lo.Map(names, func(name string, _ int) Field {
		name = strings.TrimSpace(name)
		field, ok := byName[name]
		if !ok {
			return Field{Name: name, Type: fvalue.TypeText}
		}
		field.Position = 0
		return field
	})
}

func (r Definition) DateFormats() []string {
	return r.Formats
}

func (r Definition) DateOutput() string {
	return r.Output
}

func (r Definition) DatePriority() DatePriority {
	return r.Priority
}

// Build turns the definition into a schema.
func (r Definition) Build() (*Schema, error) {
	schema, err := FromDescriptor(r)
	if err != nil {
		return nil, errors.Wrapf(err, `Build error: tag "%s"`, r.Name)
	}
	schema.SetOutDelimiter(r.OutDelimiter)
	return schema, nil
}

// ParseDefinitions decodes a YAML definition document, applies defaults and validates it.
func ParseDefinitions(data []byte) (Definitions, error) {
	var definitions Definitions
	err := yaml.Unmarshal(data, &definitions)
	if err != nil {
		return Definitions{}, errors.Wrap(err, "ParseDefinitions error: unable to parse yaml")
	}
	definitions.ApplyDefaults()
	err = definitions.Validate()
	if err != nil {
		return Definitions{}, errors.Wrap(err, "ParseDefinitions error: invalid definitions")
	}
	return definitions, nil
}

func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Definitions{}, errors.Wrapf(err, `LoadDefinitions error: unable to read "%s"`, path)
	}
	return ParseDefinitions(data)
}

// BuildAll builds every defined schema in file order.
func (r Definitions) BuildAll() ([]*Schema, error) {
	schemas := make([]*Schema, 0, len(r.Types))
	for _, definition := range r.Types {
		schema, err := definition.Build()
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}
