package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Kind is the declared type of an option.
type Kind int

const (
	// Boolean options are set by presence and default to false.
	Boolean Kind = iota
	// String options carry their raw text.
	String
	// Number options are coerced to base-10 integers.
	Number
	// Enum options must match one of the declared values.
	Enum
)

var kindNames = map[Kind]string{
	Boolean: "boolean",
	String:  "string",
	Number:  "number",
	Enum:    "enum",
}

// String returns the schema name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a schema name ("boolean", "string", "number", "enum")
// to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown option type %q", s)
}

// ErrInvalidSchema is wrapped by every error returned from New.
var ErrInvalidSchema = errors.New("invalid option schema")

// Option declares a single option the parser accepts.
type Option struct {
	// Name is the canonical long name, used as --name.
	Name string `yaml:"name"`

	// Kind determines how the raw value is coerced.
	Kind Kind `yaml:"type"`

	// Short is an optional single character alias, used as -x.
	Short string `yaml:"short,omitempty"`

	// Required makes a missing or empty value a parse error.
	// Boolean options cannot be required.
	Required bool `yaml:"required,omitempty"`

	// Values is the ordered set of allowed values for Enum options.
	Values []string `yaml:"values,omitempty"`

	// Usage is a one line description shown by Parser.Usage.
	Usage string `yaml:"usage,omitempty"`
}

// takesValue reports whether the option consumes a value token.
func (o Option) takesValue() bool {
	return o.Kind != Boolean
}

// allows reports whether v is one of the declared enum values.
func (o Option) allows(v string) bool {
	for _, allowed := range o.Values {
		if allowed == v {
			return true
		}
	}
	return false
}

func (o Option) clone() Option {
	if o.Values != nil {
		o.Values = append([]string(nil), o.Values...)
	}
	return o
}

// validate checks a single declaration in isolation.
func (o Option) validate() error {
	if o.Name == "" {
		return errors.New("name is empty")
	}
	if strings.HasPrefix(o.Name, "-") {
		return errors.New("name must not start with '-'")
	}
	if strings.ContainsAny(o.Name, "= \t") {
		return errors.New("name must not contain '=' or whitespace")
	}
	if strings.IndexFunc(o.Name, unicode.IsControl) >= 0 {
		return errors.New("name must not contain control characters")
	}
	if _, ok := kindNames[o.Kind]; !ok {
		return fmt.Errorf("unknown kind %s", o.Kind)
	}
	if o.Short != "" {
		if c := o.Short[0]; len(o.Short) != 1 || c <= ' ' || c > '~' || c == '-' || c == '=' {
			return fmt.Errorf("short alias %q must be a single printable ASCII character", o.Short)
		}
	}
	if o.Kind == Boolean && o.Required {
		return errors.New("boolean options cannot be required")
	}

	if o.Kind != Enum {
		if len(o.Values) > 0 {
			return fmt.Errorf("values are only allowed on enum options, got %s", o.Kind)
		}
		return nil
	}

	if len(o.Values) == 0 {
		return errors.New("enum options need at least one value")
	}
	seen := make(map[string]bool, len(o.Values))
	for _, v := range o.Values {
		if seen[v] {
			return fmt.Errorf("duplicate enum value %q", v)
		}
		seen[v] = true
	}
	return nil
}

// validateSchema checks every declaration and rejects name or alias
// collisions across the schema.
func validateSchema(options []Option) error {
	names := make(map[string]bool, len(options))
	shorts := make(map[string]string, len(options))

	for _, opt := range options {
		if err := opt.validate(); err != nil {
			return fmt.Errorf("%w: option %q: %v", ErrInvalidSchema, opt.Name, err)
		}
		if names[opt.Name] {
			return fmt.Errorf("%w: duplicate option --%s", ErrInvalidSchema, opt.Name)
		}
		names[opt.Name] = true

		if opt.Short == "" {
			continue
		}
		if owner, ok := shorts[opt.Short]; ok {
			return fmt.Errorf("%w: short alias -%s used by both --%s and --%s",
				ErrInvalidSchema, opt.Short, owner, opt.Name)
		}
		shorts[opt.Short] = opt.Name
	}

	return nil
}
