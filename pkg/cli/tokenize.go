package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// rawValue records what the tokenizer saw for one option. Coercion and
// validation happen later, in declaration order.
type rawValue struct {
	kind Kind
	text string
	set  bool
}

func (v *rawValue) String() string { return v.text }

func (v *rawValue) Set(s string) error {
	if v.kind == Boolean {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		s = strconv.FormatBool(b)
	}
	v.text = s
	v.set = true
	return nil
}

func (v *rawValue) Type() string {
	switch v.kind {
	case Boolean:
		return "bool"
	case Number:
		return "int"
	default:
		return "string"
	}
}

// pflag answers an undeclared --help or -h with ErrHelp instead of treating
// it like any other unknown option. helpMask renames those tokens to names
// no schema can declare before parsing, so they follow the strict and
// lenient rules of every other unknown option, and restores them after.
type helpMask struct {
	long      bool
	short     bool
	shorts    map[byte]bool // declared short alias -> takes a value
	originals map[string]string
}

const (
	maskedHelp  = "\x00help"
	maskedShort = '\x00'
)

func (p *Parser) newHelpMask() *helpMask {
	m := &helpMask{
		long:      true,
		short:     true,
		shorts:    make(map[byte]bool, len(p.options)),
		originals: make(map[string]string),
	}
	for _, opt := range p.options {
		if opt.Name == "help" {
			m.long = false
		}
		if opt.Short != "" {
			m.shorts[opt.Short[0]] = opt.takesValue()
		}
	}
	if _, ok := m.shorts['h']; ok {
		m.short = false
	}
	return m
}

func (m *helpMask) apply(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		masked := m.token(arg)
		if masked != arg {
			m.originals[masked] = arg
		}
		out[i] = masked
	}
	return out
}

func (m *helpMask) token(arg string) string {
	switch {
	case strings.HasPrefix(arg, "--"):
		if m.long && (arg == "--help" || strings.HasPrefix(arg, "--help=")) {
			return "--" + maskedHelp + strings.TrimPrefix(arg, "--help")
		}
	case m.short && len(arg) > 1 && arg[0] == '-':
		return "-" + m.shorthands(arg[1:])
	}
	return arg
}

// shorthands masks h wherever pflag reads it as a flag letter in the
// cluster s. Scanning stops where the rest of the cluster is a value.
func (m *helpMask) shorthands(s string) string {
	b := []byte(s)
	for i, c := range b {
		if takesValue, ok := m.shorts[c]; ok && takesValue {
			break
		}
		if c == 'h' {
			b[i] = maskedShort
		}
		if i+1 < len(b) && b[i+1] == '=' {
			break
		}
	}
	return string(b)
}

func (m *helpMask) restore(s string) string {
	if orig, ok := m.originals[s]; ok {
		return orig
	}
	return s
}

// explain rewrites a pflag error that mentions a masked token back to what
// the user typed.
func (m *helpMask) explain(err error) error {
	var nerr *pflag.NotExistError
	if errors.As(err, &nerr) {
		switch nerr.GetSpecifiedName() {
		case maskedHelp:
			return errors.New("unknown flag: --help")
		case string(maskedShort):
			return fmt.Errorf("unknown shorthand flag: 'h' in -%s", unmaskShorthands(nerr.GetSpecifiedShortnames()))
		}
	}
	if msg := err.Error(); strings.ContainsRune(msg, maskedShort) {
		return errors.New(unmaskShorthands(strings.ReplaceAll(msg, maskedHelp, "help")))
	}
	return err
}

func unmaskShorthands(s string) string {
	return strings.ReplaceAll(s, string(maskedShort), "h")
}

// newFlagSet builds a fresh pflag.FlagSet for the schema. Nothing is shared
// between calls, which keeps Parse free of retained state.
func (p *Parser) newFlagSet() (*pflag.FlagSet, map[string]*rawValue) {
	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	fs.ParseErrorsWhitelist.UnknownFlags = p.allowUnknown

	raw := make(map[string]*rawValue, len(p.options))
	for _, opt := range p.options {
		v := &rawValue{kind: opt.Kind}
		flag := fs.VarPF(v, opt.Name, opt.Short, flagUsage(opt))
		if !opt.takesValue() {
			flag.NoOptDefVal = "true"
		}
		raw[opt.Name] = v
	}

	return fs, raw
}

// tokenize splits args into raw option values and positionals.
func (p *Parser) tokenize(args []string) (map[string]*rawValue, []string, error) {
	fs, raw := p.newFlagSet()
	mask := p.newHelpMask()

	if err := fs.Parse(mask.apply(args)); err != nil {
		return nil, nil, mask.explain(err)
	}

	for _, v := range raw {
		v.text = mask.restore(v.text)
	}
	positionals := fs.Args()
	for i, arg := range positionals {
		positionals[i] = mask.restore(arg)
	}

	return raw, positionals, nil
}

func flagUsage(opt Option) string {
	usage := opt.Usage
	if opt.Kind == Enum {
		usage = strings.TrimSpace(fmt.Sprintf("%s (one of: %s)", usage, strings.Join(opt.Values, ", ")))
	}
	if opt.Required {
		usage = strings.TrimSpace(usage + " (required)")
	}
	return usage
}
