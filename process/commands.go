package process

import (
	"fmt"

	cli "github.com/urfave/cli/v3"
)

const sourceHelp = `
SOURCE:
    path to stylesheet(s) to process, following formats are supported:
        path to a file: "[path_to_file]file.css"
        path to a directory: "[path_to_directory]directory" - recursively process all .css and .less files under directory
        path to archive with path inside archive to a particular file: "[path_to_archive]archive.zip[path_in_archive]/file.less"
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - process all stylesheets under archive path

	Grammar is selected by file extension unless forced: .less files are
	tokenized as LESS, everything else as CSS. Stylesheets are decoded to
	UTF-8 using byte order mark or @charset rule unless encoding is forced.
`

const stdinHelp = `
	Single "-" SOURCE reads UTF-8 stylesheet from STDIN, it is tokenized as
	CSS unless grammar is forced.
`

func parsingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "grammar", Aliases: []string{"g"}, Usage: "force stylesheet `GRAMMAR` (auto, css, less)"},
		&cli.StringFlag{Name: "encoding", Usage: "force `ENCODING` for all stylesheets (see IANA.org for character set names)"},
	}
}

// Commands returns stylesheet processing subcommands. OnUsageError handler
// is shared with the root command.
func Commands(onUsageError cli.OnUsageErrorFunc) []*cli.Command {
	return []*cli.Command{
		{
			Name:               "tokens",
			Usage:              "Lists categorized character runs of stylesheet(s)",
			OnUsageError:       onUsageError,
			Action:             Tokens,
			Flags:              parsingFlags(),
			ArgsUsage:          "SOURCE...",
			CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + stdinHelp,
		},
		{
			Name:         "tree",
			Usage:        "Outputs fragment tree of stylesheet(s)",
			OnUsageError: onUsageError,
			Action:       Tree,
			Flags: append(parsingFlags(),
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT` (text, yaml, xml, ion)"},
				&cli.BoolFlag{Name: "comments", Usage: "include comments in fragment tree"},
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write a file per stylesheet into `DIR` instead of STDOUT"},
			),
			ArgsUsage:          "SOURCE...",
			CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
		},
		{
			Name:         "render",
			Usage:        "Produces syntax highlighted HTML page(s) of stylesheet(s)",
			OnUsageError: onUsageError,
			Action:       Render,
			Flags: append(parsingFlags(),
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write a page per stylesheet into `DIR` instead of STDOUT"},
			),
			ArgsUsage:          "SOURCE...",
			CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
		},
		{
			Name:         "index",
			Usage:        "Stores fragment trees of stylesheet(s) in index database",
			OnUsageError: onUsageError,
			Action:       Index,
			Flags:        parsingFlags(),
			ArgsUsage:    "DATABASE SOURCE...",
			CustomHelpTemplate: fmt.Sprintf(`%s
DATABASE:
    path to SQLite index, created if absent, stylesheets indexed before under
    the same name are replaced
%s`, cli.CommandHelpTemplate, sourceHelp),
		},
		{
			Name:         "lookup",
			Usage:        "Lists assignments of style property found in index database",
			OnUsageError: onUsageError,
			Action:       Lookup,
			ArgsUsage:    "DATABASE PROPERTY",
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			OnUsageError: onUsageError,
			Action:       DumpConfig,
			ArgsUsage:    "DESTINATION",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`,
		},
	}
}
