package cli

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeTag is the struct tag read by Values.Decode.
const DecodeTag = "option"

// Value is the resolved value of one declared option.
type Value struct {
	kind    Kind
	present bool
	flag    bool
	text    string
	number  int
}

// Kind returns the declared kind of the option.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the option resolved to a value. Boolean values
// are always present.
func (v Value) Present() bool { return v.present }

// Interface returns the value as bool, string or int, or nil when absent.
func (v Value) Interface() any {
	if !v.present {
		return nil
	}
	switch v.kind {
	case Boolean:
		return v.flag
	case Number:
		return v.number
	default:
		return v.text
	}
}

// Values holds one Value per declared option, in declaration order.
type Values struct {
	names  []string
	values map[string]Value
}

func newValues(size int) Values {
	return Values{
		names:  make([]string, 0, size),
		values: make(map[string]Value, size),
	}
}

func (vs *Values) set(name string, v Value) {
	if _, ok := vs.values[name]; !ok {
		vs.names = append(vs.names, name)
	}
	vs.values[name] = v
}

// Names returns the declared option names in declaration order.
func (vs Values) Names() []string {
	return append([]string(nil), vs.names...)
}

// Get returns the value for name and whether name was declared.
func (vs Values) Get(name string) (Value, bool) {
	v, ok := vs.values[name]
	return v, ok
}

// Has reports whether name was declared and resolved to a value.
func (vs Values) Has(name string) bool {
	return vs.values[name].present
}

// Bool returns a boolean option. Undeclared names and non-boolean options
// report false.
func (vs Values) Bool(name string) bool {
	v := vs.values[name]
	return v.kind == Boolean && v.flag
}

// String returns a string option and whether it was present.
func (vs Values) String(name string) (string, bool) {
	v, ok := vs.values[name]
	if !ok || v.kind != String || !v.present {
		return "", false
	}
	return v.text, true
}

// Int returns a number option and whether it was present.
func (vs Values) Int(name string) (int, bool) {
	v, ok := vs.values[name]
	if !ok || v.kind != Number || !v.present {
		return 0, false
	}
	return v.number, true
}

// Enum returns an enum option and whether it was present. The returned
// string is always one of the declared values.
func (vs Values) Enum(name string) (string, bool) {
	v, ok := vs.values[name]
	if !ok || v.kind != Enum || !v.present {
		return "", false
	}
	return v.text, true
}

// Map returns every declared option keyed by name. Absent values are nil.
func (vs Values) Map() map[string]any {
	m := make(map[string]any, len(vs.names))
	for _, name := range vs.names {
		m[name] = vs.values[name].Interface()
	}
	return m
}

// Decode copies the present values into the struct pointed to by dst.
// Fields are matched by the `option` tag, falling back to a case
// insensitive match on the field name. Absent values leave their field
// untouched, so pointer fields can model optional options:
//
//	var opts struct {
//		Output    *string `option:"output"`
//		Translate bool    `option:"translate"`
//	}
func (vs Values) Decode(dst any) error {
	present := make(map[string]any, len(vs.names))
	for _, name := range vs.names {
		if v := vs.values[name]; v.present {
			present[name] = v.Interface()
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  dst,
		TagName: DecodeTag,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(present); err != nil {
		return fmt.Errorf("failed to decode option values: %w", err)
	}
	return nil
}
