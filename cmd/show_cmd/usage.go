package show_cmd

import L "arkiv/logger"

const usageStr string = `
USAGE
arkiv show ID [DIR]

DESCRIPTION
Prints a cataloged archive and the entries it holds directly under DIR.
DIR is a slash separated path inside the archive, the top level by default.

EXAMPLES
1. Show archive 3
arkiv show 3

2. Show what archive 3 holds under 2024/summer
arkiv show 3 2024/summer

SEE ALSO
1. arkiv help ls
2. arkiv help tui
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
