package cli

// Usage renders the OPTIONS block for the declared options, one per line,
// in declaration order. Lines longer than width are wrapped; width <= 0
// disables wrapping.
func (p *Parser) Usage(width int) string {
	fs, _ := p.newFlagSet()
	if width <= 0 {
		return fs.FlagUsages()
	}
	return fs.FlagUsagesWrapped(width)
}
