package tui_cmd

import L "arkiv/logger"

const usageStr string = `
USAGE
arkiv tui

DESCRIPTION
Launches the interactive Terminal User Interface for browsing cataloged
archives and their entries.
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
