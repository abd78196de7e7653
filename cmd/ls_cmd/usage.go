package ls_cmd

import L "arkiv/logger"

const usageStr string = `
USAGE
arkiv ls [OPTIONS]

DESCRIPTION
Lists cataloged archives, newest first.

OPTIONS
--limit, -n <count>
Maximum number of archives to list, 0 lists all.
Default: 20

SEE ALSO
1. arkiv help show
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
