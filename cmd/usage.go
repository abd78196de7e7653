package cmd

import L "arkiv/logger"

var usageStr string = `
USAGE
arkiv [-v | -version] [-h | -help] <command> [<args>]

DESCRIPTION
arkiv turns a directory into tar or zip archives, compressed with gzip,
bzip2, xz, zstd or lz4, and keeps a catalog of what every archive holds.

COMMANDS
These are common arkiv commands used in various situations -
help       Help about a subcommand
build      Archives a directory
ls         Lists cataloged archives
show       Shows a cataloged archive and its entries
tui        Interactive terminal user interface
version    Prints version

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
