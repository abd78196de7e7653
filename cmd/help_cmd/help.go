package help_cmd

import (
	"arkiv/cmd/build_cmd"
	"arkiv/cmd/ls_cmd"
	"arkiv/cmd/show_cmd"
	"arkiv/cmd/tui_cmd"
	"context"
	"fmt"
)

func Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		PrintUsage()
		return nil
	}

	switch args[0] {
	case "build":
		build_cmd.PrintUsage()
	case "ls":
		ls_cmd.PrintUsage()
	case "show":
		show_cmd.PrintUsage()
	case "tui":
		tui_cmd.PrintUsage()
	case "help":
		PrintUsage()
	case "config":
		ConfigPrintUsage()
	default:
		return fmt.Errorf("no such command: %s", args[0])
	}
	return nil
}
