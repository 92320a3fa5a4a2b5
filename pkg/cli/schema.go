package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a kind from its schema name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = kind
	return nil
}

// MarshalYAML encodes a kind as its schema name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// LoadSchema decodes an ordered YAML list of option declarations:
//
//	- name: output
//	  type: string
//	  short: o
//	  usage: Write .txt files to directory
//	- name: translate
//	  type: boolean
//	  short: t
//
// A missing type means boolean. Unknown keys are rejected. The result is
// not validated; New does that.
func LoadSchema(data []byte) ([]Option, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var options []Option
	if err := dec.Decode(&options); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("schema is empty")
		}
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	return options, nil
}

// LoadSchemaFS reads and decodes a schema file from fsys, typically an
// embed.FS compiled into the command.
func LoadSchemaFS(fsys fs.FS, path string) ([]Option, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	options, err := LoadSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return options, nil
}
