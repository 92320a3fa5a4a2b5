package cli

// Result is the success variant of a Parse call.
type Result struct {
	command    string
	hasCommand bool

	// Values holds one entry per declared option.
	Values Values

	// Positionals are the remaining positional arguments, in order, with
	// the leading command token removed.
	Positionals []string
}

// Command returns the detected command, or the configured default when no
// leading positional qualified. ok is false when neither exists.
func (r *Result) Command() (command string, ok bool) {
	return r.command, r.hasCommand
}
