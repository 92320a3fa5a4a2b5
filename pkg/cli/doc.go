// Package cli implements the typed option parser shared by the toolbox
// commands.
//
// A Parser is built once from an ordered list of option declarations and
// turns an argument vector into a Result: the detected command, one typed
// value per declared option, and the remaining positional arguments.
// Failures are returned as *ParseError values carrying a human-readable
// message; the parser never prints or exits.
//
//	parser := cli.MustNew(cli.Config{
//		Options: []cli.Option{
//			{Name: "force", Kind: cli.Boolean, Short: "f"},
//			{Name: "port", Kind: cli.Number, Required: true},
//			{Name: "agent", Kind: cli.Enum, Values: []string{"amp", "codex"}},
//		},
//		DefaultCommand: "list",
//	})
//
//	result, err := parser.Parse(os.Args[1:])
//	if err != nil {
//		// print err, usage, exit non-zero
//	}
//	port, _ := result.Values.Int("port")
//
// Tokenizing is delegated to spf13/pflag, so the accepted syntax is
// --name, --name value, --name=value, -x and -x value.
package cli
