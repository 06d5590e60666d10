package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SchemaMinimal  = "minimal"
	SchemaExtended = "extended"
)

var (
	ErrUnknownSchema = errors.New("unknown asset schema")
	ErrInvalidSchema = errors.New("invalid asset schema")
)

// Field is one logical attribute pulled out of an asset spreadsheet.
// Header is the column name it is matched against (see Normalize) and
// Label is the heading used when the field is displayed.
type Field struct {
	Key    string `yaml:"key"`
	Header string `yaml:"header"`
	Label  string `yaml:"label"`
}

// Schema is the ordered list of fields extracted from every row. The
// same order is used for display.
type Schema struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Minimal returns the six-field schema.
func Minimal() Schema {
	return Schema{
		Name: SchemaMinimal,
		Fields: []Field{
			{Key: "asset_code", Header: "Asset Code", Label: "Asset Code"},
			{Key: "device_type", Header: "Device Type", Label: "Type"},
			{Key: "brand", Header: "Brand", Label: "Brand"},
			{Key: "model", Header: "Model", Label: "Model"},
			{Key: "location", Header: "Location", Label: "Location"},
			{Key: "email", Header: "Email Id", Label: "Email"},
		},
	}
}

// Extended returns the fourteen-field schema.
func Extended() Schema {
	return Schema{
		Name: SchemaExtended,
		Fields: []Field{
			{Key: "sl_no", Header: "Sl.No", Label: "Sl.No"},
			{Key: "asset_code", Header: "Asset Code", Label: "Asset Code"},
			{Key: "location", Header: "Location", Label: "Location"},
			{Key: "department", Header: "Department / User", Label: "Department / User"},
			{Key: "device_type", Header: "Device Type", Label: "Device Type"},
			{Key: "purpose", Header: "Purpose", Label: "Purpose"},
			{Key: "person_name", Header: "Name of the person", Label: "Name of the person"},
			{Key: "email", Header: "Email Id", Label: "Email Id"},
			{Key: "brand", Header: "Brand", Label: "Brand"},
			{Key: "model", Header: "Model", Label: "Model"},
			{Key: "serial_number", Header: "Serial Number", Label: "Serial Number"},
			{Key: "windows_version", Header: "Windows Version", Label: "Windows Version"},
			{Key: "purchase_date", Header: "Purchase Date", Label: "Purchase Date"},
			{Key: "age", Header: "Age", Label: "Age"},
		},
	}
}

// IsBuiltinSchema reports whether name refers to a schema compiled into the binary.
func IsBuiltinSchema(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemaMinimal, SchemaExtended:
		return true
	}
	return false
}

// Builtin returns the named built-in schema.
func Builtin(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemaMinimal:
		return Minimal(), nil
	case SchemaExtended:
		return Extended(), nil
	}
	return Schema{}, errors.Wrapf(ErrUnknownSchema, "%q", name)
}

// ResolveSchema loads the schema file when path is set, otherwise the
// named built-in schema.
func ResolveSchema(name, path string) (Schema, error) {
	if path != "" {
		return LoadSchemaFile(path)
	}
	return Builtin(name)
}

// LoadSchemaFile reads a YAML schema definition:
//
//	name: warehouse
//	fields:
//	  - key: asset_code
//	    header: Asset Code
//	  - key: owner
//	    header: Assigned To
//	    label: Owner
func LoadSchemaFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, errors.Wrap(err, "read schema file")
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, errors.Wrapf(err, "parse schema file %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s = s.withDefaults()
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// withDefaults fills in missing labels and keys from the header.
func (s Schema) withDefaults() Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Header = strings.TrimSpace(f.Header)
		if f.Label == "" {
			f.Label = f.Header
		}
		if f.Key == "" {
			f.Key = Normalize(f.Header)
		}
		fields[i] = f
	}
	s.Fields = fields
	return s
}

// Validate checks that the schema has at least one field, that every
// header is matchable and that keys and canonical headers are unique.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return errors.Wrap(ErrInvalidSchema, "no fields defined")
	}

	keys := make(map[string]bool, len(s.Fields))
	headers := make(map[string]string, len(s.Fields))
	for i, f := range s.Fields {
		if f.Key == "" {
			return errors.Wrapf(ErrInvalidSchema, "field %d: key is required", i)
		}
		canonical := Normalize(f.Header)
		if canonical == "" {
			return errors.Wrapf(ErrInvalidSchema, "field %q: header is required", f.Key)
		}
		if keys[f.Key] {
			return errors.Wrapf(ErrInvalidSchema, "duplicate key %q", f.Key)
		}
		if prev, ok := headers[canonical]; ok {
			return errors.Wrapf(ErrInvalidSchema, "headers %q and %q match the same column", prev, f.Header)
		}
		keys[f.Key] = true
		headers[canonical] = f.Header
	}
	return nil
}

// Labels returns the display headings in field order.
func (s Schema) Labels() []string {
	labels := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		labels[i] = f.Label
	}
	return labels
}

// Values returns the record's values in field order.
func (s Schema) Values(rec Record) []string {
	values := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		values[i] = rec[f.Key]
	}
	return values
}
