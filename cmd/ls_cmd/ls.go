package ls_cmd

import (
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/database/repository"
	L "arkiv/logger"
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"
)

func Execute(ctx context.Context, args []string) error {
	lsCmd := flag.NewFlagSet("ls", flag.ContinueOnError)
	limit := lsCmd.Int("limit", 20, "Maximum number of archives to list, 0 lists all")
	lsCmd.IntVar(limit, "n", 20, "alias to -limit")
	lsCmd.Usage = func() {
		PrintUsage()
	}
	err := lsCmd.Parse(args)
	if err != nil {
		return err
	}
	if len(lsCmd.Args()) > 0 {
		return fmt.Errorf("too many arguments. For more information check 'arkiv help ls'")
	}

	db, err := database.OpenDefault(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	archives, err := repository.NewArchiveRepository(db).ListArchives(ctx, *limit)
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		L.Println("No archives yet. See 'arkiv help build'.")
		return nil
	}
	L.Print(formatArchives(archives))
	return nil
}

func formatArchives(archives []model.Archive) string {
	s := fmt.Sprintf("%-6s %-10s %-9s %-19s %10s %10s  %s\n", "ID", "STATUS", "FORMAT", "CREATED", "SIZE", "ARCHIVE", "OUTPUT")
	for _, a := range archives {
		s += fmt.Sprintf("%-6d %-10s %-9s %-19s %10s %10s  %s\n",
			a.Id,
			a.Status,
			a.ArchiveFormat.String(),
			a.CreatedAt.Format(time.DateTime),
			L.HumanReadableBytes(uint64(a.Size)),
			L.HumanReadableBytes(uint64(a.ArchiveSize)),
			L.TruncateString(filepath.Base(a.OutputPath), 48, L.TRUNC_CENTER))
	}
	return s
}
