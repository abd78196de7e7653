package help_cmd

import L "arkiv/logger"

var usageStr string = `
USAGE
    arkiv help <command>

DESCRIPTION
    Prints usage information for a specified subcommand.

COMMANDS
    These are common arkiv commands used in various situations -
        help       Help about a subcommand
        config     Help about config.json file
        build      Archives a directory
        ls         Lists cataloged archives
        show       Shows a cataloged archive and its entries
        tui        Interactive terminal user interface

EXAMPLES
    See 'arkiv help <command>' to read about a specific subcommand.

SEE ALSO
    1. arkiv help build
    2. arkiv help config
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
