package cmd

import (
	"arkiv/cmd/build_cmd"
	"arkiv/cmd/help_cmd"
	"arkiv/cmd/ls_cmd"
	"arkiv/cmd/show_cmd"
	"arkiv/cmd/tui_cmd"
	"arkiv/cmd/version_cmd"
	"context"
)

func Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		PrintUsage()
		return nil
	}

	values := map[string]string{
		"binary_name":  args[0],
		"command_name": args[1],
	}

	ctx = context.WithValue(ctx, version_cmd.ValuesKey, values)

	switch args[1] {
	case "build":
		return build_cmd.Execute(ctx, args[2:])
	case "ls":
		return ls_cmd.Execute(ctx, args[2:])
	case "show":
		return show_cmd.Execute(ctx, args[2:])
	case "tui":
		return tui_cmd.Execute(ctx, args[2:])
	case "help", "--help", "-h":
		return help_cmd.Execute(ctx, args[2:])
	case "version", "--version", "-v":
		return version_cmd.Execute(ctx, args[2:])
	default:
		PrintUsage()
		return nil
	}
}
