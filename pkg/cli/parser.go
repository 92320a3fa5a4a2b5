package cli

import (
	"strconv"
	"strings"
	"unicode"
)

// Config is the declarative input to New.
type Config struct {
	// Options are the accepted options. Their order is the order in which
	// values are resolved and validated.
	Options []Option

	// DefaultCommand is reported as the command when no leading positional
	// qualifies. Empty means no default.
	DefaultCommand string

	// AllowUnknown makes the parser drop undeclared options, together with
	// the value token that follows them, instead of failing.
	AllowUnknown bool
}

// Parser turns argument vectors into typed results. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	options        []Option
	defaultCommand string
	allowUnknown   bool
}

// New validates the schema and returns a Parser. Duplicate long names,
// duplicate short aliases and malformed declarations are rejected with an
// error wrapping ErrInvalidSchema.
func New(config Config) (*Parser, error) {
	if err := validateSchema(config.Options); err != nil {
		return nil, err
	}

	options := make([]Option, len(config.Options))
	for i, opt := range config.Options {
		options[i] = opt.clone()
	}

	return &Parser{
		options:        options,
		defaultCommand: config.DefaultCommand,
		allowUnknown:   config.AllowUnknown,
	}, nil
}

// MustNew is like New but panics on an invalid schema. It is meant for
// package level parsers whose schema is a literal.
func MustNew(config Config) *Parser {
	p, err := New(config)
	if err != nil {
		panic(err)
	}
	return p
}

// Options returns a copy of the declared options.
func (p *Parser) Options() []Option {
	options := make([]Option, len(p.options))
	for i, opt := range p.options {
		options[i] = opt.clone()
	}
	return options
}

// Parse parses args, which must not include the program name. On failure
// the returned error is a *ParseError and no partial result is produced.
func (p *Parser) Parse(args []string) (*Result, error) {
	raw, positionals, err := p.tokenize(args)
	if err != nil {
		return nil, malformed(err)
	}

	result := &Result{Values: newValues(len(p.options))}
	result.command, result.hasCommand, result.Positionals = p.splitCommand(positionals)

	for _, opt := range p.options {
		v, perr := resolve(opt, raw[opt.Name])
		if perr != nil {
			return nil, perr
		}
		result.Values.set(opt.Name, v)
	}

	return result, nil
}

// splitCommand takes the first positional as the command when it does not
// look like an option, and falls back to the default command otherwise. An
// empty first positional is reported as the empty command but is kept in
// the positionals, since it cannot name anything.
func (p *Parser) splitCommand(positionals []string) (string, bool, []string) {
	if len(positionals) > 0 && !strings.HasPrefix(positionals[0], "-") {
		if positionals[0] == "" {
			return "", true, append([]string{}, positionals...)
		}
		return positionals[0], true, append([]string{}, positionals[1:]...)
	}

	rest := append([]string{}, positionals...)
	if p.defaultCommand != "" {
		return p.defaultCommand, true, rest
	}
	return "", false, rest
}

// resolve coerces and validates the raw value of one option.
func resolve(opt Option, raw *rawValue) (Value, *ParseError) {
	v := Value{kind: opt.Kind}

	if opt.Kind == Boolean {
		v.present = true
		v.flag = raw.set && raw.text == "true"
		return v, nil
	}

	if !raw.set || raw.text == "" {
		if opt.Required {
			return v, missingRequired(opt.Name)
		}
		return v, nil
	}

	switch opt.Kind {
	case Number:
		n, ok := parseInteger(raw.text)
		if !ok {
			return v, invalidNumber(opt.Name, raw.text)
		}
		v.number = n
	case Enum:
		if !opt.allows(raw.text) {
			return v, invalidEnum(opt, raw.text)
		}
		v.text = raw.text
	default:
		v.text = raw.text
	}

	v.present = true
	return v, nil
}

// parseInteger reads the base-10 integer at the start of s, after optional
// leading whitespace and sign. Trailing text is ignored, so "42px" is 42.
// It fails when no digit is found or the value overflows int.
func parseInteger(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
