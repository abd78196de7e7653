package version_cmd

import (
	L "arkiv/logger"
	"context"
	"path/filepath"
)

type contextKey string

// ValuesKey holds the map of invocation values set by the dispatcher.
const ValuesKey contextKey = "values"

// NOTE: populated at build time with -ldflags (-X)
var version string = "dev"

// NOTE: populated at build time with -ldflags (-X)
var commitHash string = "unknown"

func Execute(ctx context.Context, args []string) error {
	name := "arkiv"
	if values, ok := ctx.Value(ValuesKey).(map[string]string); ok && values["binary_name"] != "" {
		name = filepath.Base(values["binary_name"])
	}
	L.Printf("%s version v%s, build %s\n", name, version, commitHash)
	return nil
}
